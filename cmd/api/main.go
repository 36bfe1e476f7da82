package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/obra-stock/internal/application/answer"
	"github.com/jhoicas/obra-stock/internal/application/notify"
	"github.com/jhoicas/obra-stock/internal/application/ussd"
	infraai "github.com/jhoicas/obra-stock/internal/infrastructure/ai"
	"github.com/jhoicas/obra-stock/internal/infrastructure/postgres"
	infrasms "github.com/jhoicas/obra-stock/internal/infrastructure/sms"
	httpRouter "github.com/jhoicas/obra-stock/internal/interfaces/http"
	"github.com/jhoicas/obra-stock/pkg/config"
	"github.com/jhoicas/obra-stock/pkg/logger"

	_ "github.com/jhoicas/obra-stock/docs" // registra la documentación swagger generada
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	stakeholderRepo := postgres.NewStakeholderRepository(pool)

	smsSvc := infrasms.NewAfricasTalkingService(
		cfg.SMS.Username, cfg.SMS.APIKey, cfg.SMS.ShortCode, cfg.SMS.BaseURL,
	)
	dispatcher := notify.NewDispatcher(smsSvc, log)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	relay := answer.NewRelay(geminiSvc, log)

	ussdService := ussd.NewService(materialRepo, stakeholderRepo, dispatcher, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Obra Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UssdService: ussdService,
		Materials:   materialRepo,
		Relay:       relay,
		Dispatcher:  dispatcher,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
