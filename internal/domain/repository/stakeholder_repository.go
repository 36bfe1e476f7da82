package repository

import "context"

// StakeholderRepository define el puerto de lectura de interesados.
type StakeholderRepository interface {
	// ListPhoneNumbers devuelve los números registrados para el fan-out de notificaciones.
	ListPhoneNumbers(ctx context.Context) ([]string, error)
}
