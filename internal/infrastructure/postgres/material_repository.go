package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/obra-stock/internal/domain"
	"github.com/jhoicas/obra-stock/internal/domain/entity"
	"github.com/jhoicas/obra-stock/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia de materiales.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// List devuelve todos los materiales en orden determinista (name ASC, id ASC).
// El desempate por id garantiza numeración estable del menú entre dos llamadas
// del mismo diálogo aunque existan nombres repetidos por error de datos.
func (r *MaterialRepo) List(ctx context.Context) ([]entity.Material, error) {
	query := `
		SELECT id, name, unit, quantity
		FROM materials ORDER BY name ASC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var materials []entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.Quantity); err != nil {
			return nil, fmt.Errorf("scan material: %w: %w", domain.ErrStorage, err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list materials: %w: %w", domain.ErrStorage, err)
	}
	return materials, nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	query := `
		SELECT id, name, unit, quantity
		FROM materials WHERE id = $1`
	var m entity.Material
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Unit, &m.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material: %w: %w", domain.ErrStorage, err)
	}
	return &m, nil
}

// ApplyDelta aplica el ajuste en una sola operación condicional: lectura,
// validación de cota y escritura son indivisibles a nivel de fila, así dos
// decrementos concurrentes no pueden validar contra una cantidad obsoleta.
// Cero filas afectadas se desambigua con una lectura posterior: material
// inexistente o stock insuficiente (con la cantidad vigente para el mensaje).
func (r *MaterialRepo) ApplyDelta(ctx context.Context, id int64, delta int64) (int64, error) {
	query := `
		UPDATE materials
		SET quantity = quantity + $1
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING quantity`
	var quantity int64
	err := r.q.QueryRow(ctx, query, delta, id).Scan(&quantity)
	if err == nil {
		return quantity, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("apply delta: %w: %w", domain.ErrStorage, err)
	}

	var available int64
	err = r.q.QueryRow(ctx, `SELECT quantity FROM materials WHERE id = $1`, id).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("apply delta: %w: %w", domain.ErrStorage, err)
	}
	return 0, &domain.InsufficientStockError{Available: available}
}
