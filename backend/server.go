package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/handlers"
	"github.com/barkprotocol/blinkshare-platform-sub000/backend/middleware"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins string
	// RateLimit is requests per minute per client IP on the blink routes.
	RateLimit int
	// ProxyHeader names the header carrying the client IP, e.g.
	// X-Forwarded-For. It is honoured only for requests from TrustedProxies.
	ProxyHeader    string
	TrustedProxies []string
	Version        string
}

type Server struct {
	app *fiber.App
	cfg Config
}

func NewServer(svc handlers.BlinkService, deps map[string]handlers.Pinger, cfg Config) *Server {
	app := fiber.New(fiber.Config{
		AppName:                 "BlinkShare API",
		ServerHeader:            "BlinkShare",
		ErrorHandler:            middleware.CustomErrorHandler,
		DisableStartupMessage:   true,
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            90 * time.Second,
		ProxyHeader:             cfg.ProxyHeader,
		EnableTrustedProxyCheck: cfg.ProxyHeader != "",
		TrustedProxies:          cfg.TrustedProxies,
		EnableIPValidation:      true,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(middleware.ActionsCORS(cfg.AllowOrigins))
	app.Use(middleware.LoggingMiddleware())

	app.Get("/health", handlers.HealthCheck(cfg.Version, deps))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/actions.json", middleware.ActionHeaders(), handlers.ActionsRules)

	blink := handlers.NewBlinkHandler(svc)
	group := app.Group("/blinks", middleware.ActionHeaders(), middleware.RateLimit(cfg.RateLimit, time.Minute))
	group.Get("/:guildId", blink.Describe)
	group.Post("/:guildId/buy", blink.Buy)
	group.Post("/:guildId/confirm", blink.Confirm)

	app.Use(handlers.NotFound)

	return &Server{app: app, cfg: cfg}
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Start blocks until the listener stops.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	slog.Info("Starting HTTP server",
		slog.String("type", "http"),
		slog.String("address", address))
	if err := s.app.Listen(address); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped", slog.String("type", "http"))
	return nil
}
