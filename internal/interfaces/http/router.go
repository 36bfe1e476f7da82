package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obra-stock/internal/application/answer"
	"github.com/jhoicas/obra-stock/internal/application/notify"
	"github.com/jhoicas/obra-stock/internal/application/ussd"
	"github.com/jhoicas/obra-stock/internal/domain/repository"
	"github.com/jhoicas/obra-stock/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UssdService *ussd.Service
	Materials   repository.MaterialRepository
	Relay       *answer.Relay
	Dispatcher  *notify.Dispatcher
	Logger      *logger.Logger
}

// Router registra las rutas del servicio. Sin autenticación: la identidad del
// usuario final es el número de teléfono que aporta el gateway.
func Router(app *fiber.App, deps RouterDeps) {
	ussdHandler := NewUssdHandler(deps.UssdService)
	app.Post("/ussd", ussdHandler.Callback)
	app.Get("/ussd", ussdHandler.Callback)

	messagesHandler := NewMessagesHandler(deps.Materials, deps.Relay, deps.Dispatcher, deps.Logger)
	app.Post("/incoming-messages", messagesHandler.Incoming)
}
