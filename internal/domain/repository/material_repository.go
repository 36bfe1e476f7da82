package repository

import (
	"context"

	"github.com/jhoicas/obra-stock/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia de materiales.
// List debe ser determinista (name ASC, id ASC) porque la numeración del menú USSD
// se recalcula en cada llamada y debe coincidir entre "seleccionar" y "aplicar".
type MaterialRepository interface {
	List(ctx context.Context) ([]entity.Material, error)
	GetByID(ctx context.Context, id int64) (*entity.Material, error)
	// ApplyDelta aplica un ajuste con signo de forma atómica: lectura, validación
	// (quantity + delta >= 0) y escritura en una sola operación condicional.
	// Devuelve la cantidad resultante; *domain.InsufficientStockError si el
	// resultado sería negativo (sin mutar), domain.ErrNotFound si el id no existe.
	ApplyDelta(ctx context.Context, id int64, delta int64) (int64, error)
}
