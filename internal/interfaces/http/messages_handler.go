package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obra-stock/internal/application/answer"
	"github.com/jhoicas/obra-stock/internal/application/notify"
	"github.com/jhoicas/obra-stock/internal/domain/repository"
	"github.com/jhoicas/obra-stock/pkg/logger"
)

// MessagesHandler atiende los SMS entrantes reenviados por el gateway: arma el
// snapshot de stock, consulta el oráculo y responde al remitente por SMS.
// Este camino es de solo lectura sobre el inventario.
type MessagesHandler struct {
	materials  repository.MaterialRepository
	relay      *answer.Relay
	dispatcher *notify.Dispatcher
	log        *logger.Logger
}

// NewMessagesHandler construye el handler.
func NewMessagesHandler(
	materials repository.MaterialRepository,
	relay *answer.Relay,
	dispatcher *notify.Dispatcher,
	log *logger.Logger,
) *MessagesHandler {
	return &MessagesHandler{materials: materials, relay: relay, dispatcher: dispatcher, log: log}
}

// Incoming godoc
// @Summary      SMS entrante del gateway
// @Description  Consulta de texto libre sobre el stock. El gateway solo espera el acuse de recibo; la respuesta viaja por SMS al remitente.
// @Tags         sms
// @Accept       x-www-form-urlencoded
// @Param        from  formData  string  true  "Número del remitente"
// @Param        text  formData  string  true  "Texto de la consulta"
// @Param        id    formData  string  false "ID de mensaje del gateway (dedup/logging)"
// @Success      200  {string}  string
// @Failure      400  {string}  string
// @Router       /incoming-messages [post]
func (h *MessagesHandler) Incoming(c *fiber.Ctx) error {
	sender := c.FormValue("from")
	text := c.FormValue("text")
	messageID := c.FormValue("id")

	log := h.log.With().
		Str("message_id", messageID).
		Str("from", sender).
		Logger()

	if sender == "" || text == "" {
		log.Warn().Msg("SMS entrante incompleto")
		return c.SendStatus(fiber.StatusBadRequest)
	}

	log.Info().Str("text", text).Msg("SMS entrante recibido")

	// El snapshot puede fallar; el relay responde igual con contexto vacío.
	stock, err := h.materials.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cargar snapshot de stock para el oráculo")
	}

	reply := h.relay.Answer(c.Context(), text, stock)

	results := h.dispatcher.Dispatch(c.Context(), []string{sender}, reply)
	if len(results) > 0 && results[0].Err != nil {
		log.Error().Err(results[0].Err).Msg("respuesta SMS al remitente fallida")
	}

	// El gateway solo necesita el 200 para no reintentar la entrega.
	return c.SendStatus(fiber.StatusOK)
}
