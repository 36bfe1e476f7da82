package notify_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obra-stock/internal/application/notify"
	"github.com/jhoicas/obra-stock/internal/domain"
	"github.com/jhoicas/obra-stock/pkg/logger"
)

type stubSender struct {
	mu       sync.Mutex
	failing  map[string]bool
	panicOn  string
	received map[string]string
}

func newStubSender(failing ...string) *stubSender {
	s := &stubSender{failing: map[string]bool{}, received: map[string]string{}}
	for _, phone := range failing {
		s.failing[phone] = true
	}
	return s
}

func (s *stubSender) Send(ctx context.Context, to string, message string) error {
	if to == s.panicOn {
		panic("adaptador roto")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing[to] {
		return fmt.Errorf("%w: rechazado", domain.ErrDelivery)
	}
	s.received[to] = message
	return nil
}

func TestDispatch_FalloDeUnoNoImpideLosDemas(t *testing.T) {
	sender := newStubSender("+255722")
	d := notify.NewDispatcher(sender, logger.Nop())

	recipients := []string{"+255711", "+255722", "+255733"}
	results := d.Dispatch(context.Background(), recipients, "stock update")

	require.Len(t, results, 3, "un resultado por destinatario, siempre")
	assert.Equal(t, "+255711", results[0].Phone)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrDelivery, "el fallo queda en su posición")
	assert.NoError(t, results[2].Err)

	assert.Equal(t, "stock update", sender.received["+255711"])
	assert.Equal(t, "stock update", sender.received["+255733"])
}

func TestDispatch_SinDestinatarios(t *testing.T) {
	sender := newStubSender()
	d := notify.NewDispatcher(sender, logger.Nop())

	results := d.Dispatch(context.Background(), nil, "nadie escucha")

	assert.Empty(t, results)
	assert.Empty(t, sender.received, "sin destinatarios no hay envíos")
}

func TestDispatch_PanicoDelAdaptadorQuedaComoFallo(t *testing.T) {
	sender := newStubSender()
	sender.panicOn = "+255722"
	d := notify.NewDispatcher(sender, logger.Nop())

	results := d.Dispatch(context.Background(), []string{"+255711", "+255722"}, "hola")

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrDelivery)
}

func TestDispatch_TruncaAlLimiteDelGateway(t *testing.T) {
	sender := newStubSender()
	d := notify.NewDispatcher(sender, logger.Nop())

	long := strings.Repeat("a", 450)
	results := d.Dispatch(context.Background(), []string{"+255711"}, long)

	require.NoError(t, results[0].Err)
	got := sender.received["+255711"]
	assert.Len(t, got, notify.MaxMessageLen)
	assert.True(t, strings.HasSuffix(got, "..."), "el truncado deja elipsis visible")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", notify.Truncate("corto"))

	exact := strings.Repeat("x", notify.MaxMessageLen)
	assert.Equal(t, exact, notify.Truncate(exact), "en el límite exacto no se toca")

	over := exact + "y"
	got := notify.Truncate(over)
	assert.Len(t, got, notify.MaxMessageLen)
	assert.Equal(t, strings.Repeat("x", notify.MaxMessageLen-3)+"...", got)
}
