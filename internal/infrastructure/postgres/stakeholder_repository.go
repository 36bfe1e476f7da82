package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/obra-stock/internal/domain"
	"github.com/jhoicas/obra-stock/internal/domain/repository"
)

var _ repository.StakeholderRepository = (*StakeholderRepo)(nil)

// StakeholderRepo implementación del puerto StakeholderRepository sobre PostgreSQL.
type StakeholderRepo struct {
	q Querier
}

// NewStakeholderRepository construye el adaptador de lectura de interesados.
func NewStakeholderRepository(q Querier) *StakeholderRepo {
	return &StakeholderRepo{q: q}
}

// ListPhoneNumbers devuelve los teléfonos registrados para notificaciones.
func (r *StakeholderRepo) ListPhoneNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT phone_number FROM stakeholders ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list stakeholders: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("scan stakeholder: %w: %w", domain.ErrStorage, err)
		}
		numbers = append(numbers, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stakeholders: %w: %w", domain.ErrStorage, err)
	}
	return numbers, nil
}
