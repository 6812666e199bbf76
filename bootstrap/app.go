package bootstrap

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"claim_relay/config"
	"claim_relay/handlers"
	"claim_relay/middleware"
	"claim_relay/pkg/logging"
	"claim_relay/routes"
	"claim_relay/web"
)

type App struct {
	Cfg      *config.Config
	Services *Services
	Handlers *Handlers
	Fiber    *fiber.App
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}
	app.Services = NewServices(cfg)
	app.Handlers = NewHandlers(cfg, app.Services)

	f := fiber.New(fiber.Config{
		AppName:               "claim-relay",
		BodyLimit:             cfg.BodyLimit,
		StreamRequestBody:     true,
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler,

		// multipart bodies are relayed as opaque bytes
		DisablePreParseMultipartForm: true,
	})
	f.Use(recover.New())
	f.Use(middleware.RequestID())
	f.Use(middleware.Logger(cfg.AppEnv))
	f.Use(middleware.CORS(cfg.AllowOrigins))

	// static assets are public, everything after the gate is not
	if cfg.ServeStatic {
		assets, err := web.Assets(cfg.StaticDir)
		if err != nil {
			logging.Logger.Error("fail loading static client", "dir", cfg.StaticDir, "error", err)
			return nil, fmt.Errorf("static client: %w", err)
		}
		routes.RegisterStaticRoutes(f, assets)
	}
	f.Use(middleware.BasicAuth(cfg))
	if !cfg.ServeStatic {
		routes.RegisterInfoRoute(f)
	}
	routes.RegisterRelayRoutes(f, app.Handlers.RelayHandler)

	app.Fiber = f
	return app, nil
}

func (a *App) Listen() error {
	addr := ":" + a.Cfg.HttpPort
	logging.Logger.Info("Server running", "addr", "http://0.0.0.0"+addr)
	if a.Cfg.HasCredentials() {
		logging.Logger.Info("Authentication enabled", "user", a.Cfg.AuthUser)
	} else {
		logging.Logger.Warn("AUTH_USER or AUTH_PASS not set, every API request will fail with 500")
	}
	return a.Fiber.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Fiber == nil {
		return nil
	}
	return a.Fiber.ShutdownWithContext(ctx)
}
