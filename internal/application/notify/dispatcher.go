package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/obra-stock/internal/application/ports"
	"github.com/jhoicas/obra-stock/internal/domain"
	"github.com/jhoicas/obra-stock/pkg/logger"
)

// MaxMessageLen es el límite práctico de payload del gateway SMS. Los mensajes
// más largos se truncan con elipsis visible en lugar de fallar el envío.
const MaxMessageLen = 300

// Delivery es el resultado por destinatario de un fan-out. Err nil = entregado al gateway.
type Delivery struct {
	Phone string
	Err   error
}

// Dispatcher reparte un mensaje entre destinatarios con entrega best-effort:
// el fallo de un destinatario nunca impide intentar los demás y la llamada
// agregada nunca devuelve error. Los fallos se registran, no se reintentan.
type Dispatcher struct {
	sender ports.SMSSender
	log    *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(sender ports.SMSSender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

// Dispatch envía message a cada destinatario en paralelo y devuelve un resultado
// por destinatario, en el mismo orden de entrada. Sin garantía de orden de entrega.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []string, message string) []Delivery {
	results := make([]Delivery, len(recipients))
	if len(recipients) == 0 {
		return results
	}

	message = Truncate(message)
	batchID := uuid.New().String()

	var wg sync.WaitGroup
	for i, phone := range recipients {
		wg.Add(1)
		go func(i int, phone string) {
			defer wg.Done()
			err := d.send(ctx, phone, message)
			results[i] = Delivery{Phone: phone, Err: err}
			if err != nil {
				d.log.Error().Err(err).
					Str("batch_id", batchID).
					Str("phone", phone).
					Msg("entrega SMS fallida")
			}
		}(i, phone)
	}
	wg.Wait()

	d.log.Info().
		Str("batch_id", batchID).
		Int("recipients", len(recipients)).
		Int("delivered", delivered(results)).
		Msg("fan-out de notificación completado")

	return results
}

// send aísla el pánico de un adaptador defectuoso como error del destinatario.
func (d *Dispatcher) send(ctx context.Context, phone, message string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error().Interface("panic", rec).Str("phone", phone).Msg("pánico en adaptador SMS")
			err = fmt.Errorf("%w: pánico en adaptador", domain.ErrDelivery)
		}
	}()
	return d.sender.Send(ctx, phone, message)
}

// Truncate recorta el mensaje al límite del gateway dejando una elipsis visible.
func Truncate(message string) string {
	if len(message) <= MaxMessageLen {
		return message
	}
	return message[:MaxMessageLen-3] + "..."
}

func delivered(results []Delivery) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}
