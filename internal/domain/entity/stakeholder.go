package entity

// Stakeholder es un interesado que recibe notificaciones SMS de movimientos.
// Solo lectura desde el núcleo: la lista se usa como destino de fan-out.
type Stakeholder struct {
	ID          int64
	Name        string // opcional
	PhoneNumber string // único, formato internacional
}
