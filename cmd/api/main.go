// @title        Leads CRM API
// @version      1.0
// @description  API de gestión de leads de restaurantes: agenda de llamadas, contactos, interacciones y desempeño.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/leads-crm-api/docs"
	appanalytics "github.com/jhoicas/leads-crm-api/internal/application/analytics"
	"github.com/jhoicas/leads-crm-api/internal/application/auth"
	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/leads-crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/leads-crm-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/leads-crm-api/internal/interfaces/http"
	"github.com/jhoicas/leads-crm-api/pkg/config"
	"github.com/jhoicas/leads-crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.Store.Driver).
		Bool("auth", cfg.Auth.Enabled).
		Msg("iniciando aplicación")

	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.Open(openCtx, cfg)
	cancelOpen()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("conexión al almacén")
	}

	leadUC := crm.NewLeadUseCase(st.Leads, st.Contacts, st.Interactions, st.Users, st.Tx)
	contactUC := crm.NewContactUseCase(st.Contacts, st.Leads)
	interactionUC := crm.NewInteractionUseCase(st.Interactions, st.Leads)
	dashboardUC := appanalytics.NewDashboardUseCase(st.Leads, st.Interactions)
	reportUC := appanalytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	userUC := usecase.NewUserUseCase(st.Users)
	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Leads CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LeadUC:        leadUC,
		ContactUC:     contactUC,
		InteractionUC: interactionUC,
		DashboardUC:   dashboardUC,
		ReportUC:      reportUC,
		UserUC:        userUC,
		AuthUC:        authUC,
		AuthEnabled:   cfg.Auth.Enabled,
		JWTSecret:     cfg.JWT.Secret,
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
	if err := st.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del almacén")
	}

	log.Info().Msg("aplicación detenida")
}
