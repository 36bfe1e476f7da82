package ussd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/obra-stock/internal/application/notify"
	"github.com/jhoicas/obra-stock/internal/domain"
	"github.com/jhoicas/obra-stock/internal/domain/repository"
	"github.com/jhoicas/obra-stock/pkg/logger"
	"github.com/rs/zerolog"
)

const genericErrorText = "An internal error occurred. Please try again later."

// Service orquesta una vuelta del diálogo: carga el snapshot de materiales,
// decodifica con Decode y ejecuta el efecto terminal (commit atómico + notificación).
// Los colaboradores se inyectan en la construcción; no hay estado de sesión propio.
type Service struct {
	materials    repository.MaterialRepository
	stakeholders repository.StakeholderRepository
	dispatcher   *notify.Dispatcher
	log          *logger.Logger
}

// NewService construye el orquestador del diálogo USSD.
func NewService(
	materials repository.MaterialRepository,
	stakeholders repository.StakeholderRepository,
	dispatcher *notify.Dispatcher,
	log *logger.Logger,
) *Service {
	return &Service{
		materials:    materials,
		stakeholders: stakeholders,
		dispatcher:   dispatcher,
		log:          log,
	}
}

// Handle procesa una vuelta del gateway y devuelve siempre un cuerpo con marcador
// CON o END. Cualquier fallo interno se registra con detalle y se responde con un
// END genérico: el texto de error interno nunca llega al usuario final.
func (s *Service) Handle(ctx context.Context, sessionID, phone, text string) (response string) {
	log := s.log.With().
		Str("session_id", sessionID).
		Str("phone", phone).
		Str("request_id", uuid.New().String()).
		Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("pánico procesando diálogo USSD")
			response = PrefixEnd + genericErrorText
		}
	}()

	log.Info().Str("input", text).Msg("vuelta USSD recibida")

	materials, err := s.materials.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cargar snapshot de materiales")
		return PrefixEnd + genericErrorText
	}

	result := Decode(text, phone, materials)
	if result.Effect == nil {
		return result.Response()
	}

	switch result.Effect.Kind {
	case EffectCheck:
		// Copia por SMS de la consulta al propio consultante; cosmético, sin reintentos.
		s.dispatcher.Dispatch(ctx, []string{phone}, "Current stock. "+result.Text)
		return result.Response()
	case EffectReceive, EffectUse:
		return PrefixEnd + s.commit(ctx, log, phone, *result.Effect)
	default:
		return result.Response()
	}
}

// commit aplica el delta de forma atómica y, solo si el commit prospera, dispara
// la notificación (exactamente un intento por mutación confirmada).
func (s *Service) commit(ctx context.Context, log zerolog.Logger, phone string, effect Effect) string {
	material := effect.Material

	newQuantity, err := s.materials.ApplyDelta(ctx, material.ID, effect.Delta)
	if err != nil {
		var shortfall *domain.InsufficientStockError
		switch {
		case errors.As(err, &shortfall):
			log.Warn().
				Int64("material_id", material.ID).
				Int64("requested", effect.Quantity).
				Int64("available", shortfall.Available).
				Msg("uso rechazado por stock insuficiente")
			return fmt.Sprintf("Cannot use %d %s. Only %d available.",
				effect.Quantity, material.Unit, shortfall.Available)
		case errors.Is(err, domain.ErrNotFound):
			// Selección obsoleta: el material desapareció entre el menú y el commit.
			return "Invalid material selection."
		default:
			log.Error().Err(err).Int64("material_id", material.ID).Msg("commit de delta fallido")
			return "Failed to update the stock database."
		}
	}

	log.Info().
		Int64("material_id", material.ID).
		Int64("delta", effect.Delta).
		Int64("quantity", newQuantity).
		Msg("movimiento de stock confirmado")

	var text string
	var stakeholderMsg string
	switch effect.Kind {
	case EffectReceive:
		text = fmt.Sprintf("%d %s of %s recorded as RECEIVED.", effect.Quantity, material.Unit, material.Name)
		stakeholderMsg = fmt.Sprintf("RECEIVED: %d %s of %s recorded via USSD by %s.",
			effect.Quantity, material.Unit, material.Name, phone)
	default:
		text = fmt.Sprintf("%d %s of %s recorded as USED. Remaining: %d.",
			effect.Quantity, material.Unit, material.Name, newQuantity)
		stakeholderMsg = fmt.Sprintf("USED: %d %s of %s recorded via USSD by %s. Remaining: %d.",
			effect.Quantity, material.Unit, material.Name, phone, newQuantity)
	}

	text += s.notifyStakeholders(ctx, log, stakeholderMsg)

	// Confirmación al propio usuario; best-effort, no altera el resumen.
	s.dispatcher.Dispatch(ctx, []string{phone},
		fmt.Sprintf("Confirmed: %d %s of %s %s. Current stock: %d.",
			effect.Quantity, material.Unit, material.Name, verb(effect.Kind), newQuantity))

	return text
}

// notifyStakeholders hace el fan-out a interesados y devuelve el sufijo legible
// del resumen: notificados, parcialmente notificados u omitido.
func (s *Service) notifyStakeholders(ctx context.Context, log zerolog.Logger, message string) string {
	numbers, err := s.stakeholders.ListPhoneNumbers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cargar teléfonos de interesados")
		return " SMS notification failed."
	}
	if len(numbers) == 0 {
		return " No stakeholders to notify."
	}

	results := s.dispatcher.Dispatch(ctx, numbers, message)
	ok := 0
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}
	switch {
	case ok == len(results):
		return " Stakeholders notified."
	case ok == 0:
		return " SMS notification failed."
	default:
		return " Some stakeholders could not be notified."
	}
}

func verb(kind EffectKind) string {
	if kind == EffectReceive {
		return "received"
	}
	return "used"
}
