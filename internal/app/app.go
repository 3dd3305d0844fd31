package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/elethrixneil1/bsit1e/internal/auth"
	"github.com/elethrixneil1/bsit1e/internal/config"
	"github.com/elethrixneil1/bsit1e/internal/db"
	"github.com/elethrixneil1/bsit1e/internal/enrollment"
	"github.com/elethrixneil1/bsit1e/internal/health"
	"github.com/elethrixneil1/bsit1e/internal/logger"
	"github.com/elethrixneil1/bsit1e/internal/middleware"
	"github.com/elethrixneil1/bsit1e/internal/user"
	"github.com/elethrixneil1/bsit1e/internal/web"

	"github.com/go-chi/chi/v5"
)

type App struct {
	config *config.Config
	router chi.Router
	server *http.Server
	logger *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	if cfg.Session.Secret == config.DevSecret {
		slogLogger.Warn("using the built-in dev session secret, set SESSION_SECRET for real deployments")
	}

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database, (*user.User)(nil), (*enrollment.Enrollment)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	app.router.Use(middleware.RequestLogger(slogLogger))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Stores and services
	userRepo := user.NewRepository(database)
	userService := user.NewService(userRepo)

	enrollmentRepo := enrollment.NewRepository(database)
	enrollmentService := enrollment.NewService(enrollmentRepo, userRepo)

	sessions := auth.NewSessions(cfg.Session.Secret, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	// Web routes (public pages plus the session/role gated groups)
	webHandler := web.NewHandler(userService, enrollmentService, sessions, slogLogger)
	webHandler.RegisterRoutes(app.router)

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	return a.server.Shutdown(ctx)
}
