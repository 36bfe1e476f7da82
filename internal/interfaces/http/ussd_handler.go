package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obra-stock/internal/application/ussd"
)

// UssdHandler atiende el callback del gateway USSD.
type UssdHandler struct {
	svc *ussd.Service
}

// NewUssdHandler construye el handler.
func NewUssdHandler(svc *ussd.Service) *UssdHandler {
	return &UssdHandler{svc: svc}
}

// Callback godoc
// @Summary      Callback del gateway USSD
// @Description  Recibe el input acumulado de la sesión y responde la siguiente pantalla. El cuerpo empieza con "CON " (espera otro segmento) o "END " (cierra la sesión); el gateway reconoce esos marcadores.
// @Tags         ussd
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        sessionId    formData  string  false  "ID opaco de sesión (solo logging)"
// @Param        serviceCode  formData  string  false  "Código de servicio marcado"
// @Param        phoneNumber  formData  string  true   "Número del usuario en formato internacional"
// @Param        text         formData  string  false  "Segmentos acumulados separados por *"
// @Success      200  {string}  string
// @Router       /ussd [post]
func (h *UssdHandler) Callback(c *fiber.Ctx) error {
	sessionID := formOrQuery(c, "sessionId")
	phone := formOrQuery(c, "phoneNumber")
	text := formOrQuery(c, "text")

	response := h.svc.Handle(c.Context(), sessionID, phone, text)

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(response)
}

// formOrQuery lee un campo del form y cae al query string: el gateway prueba
// tanto POST como GET contra el callback.
func formOrQuery(c *fiber.Ctx, key string) string {
	if v := c.FormValue(key); v != "" {
		return v
	}
	return c.Query(key)
}
