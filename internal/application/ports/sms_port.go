package ports

import "context"

// SMSSender define el puerto de salida hacia el gateway de mensajería.
// Un envío por destinatario: el fan-out y la recolección de resultados
// parciales son responsabilidad del despachador, no del adaptador.
type SMSSender interface {
	Send(ctx context.Context, to string, message string) error
}
