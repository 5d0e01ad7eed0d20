package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/folio/folio-go/internal/config"
	"github.com/folio/folio-go/internal/handler"
	"github.com/folio/folio-go/internal/logging"
	"github.com/folio/folio-go/internal/repository"
	"github.com/folio/folio-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	if _, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		slog.Warn("invalid LOG_LEVEL, using info", "value", cfg.LogLevel)
		logging.Setup("info", cfg.LogFormat, os.Stderr)
	}

	// The pool is provisioned on first use, so the server starts even when
	// the database is unreachable; requests then fail or degrade per route.
	pool := repository.NewProvisioner(cfg.Database, cfg.IsProduction())
	schema := repository.NewSchema()

	projectRepo := repository.NewProjectRepository(pool, schema)
	userRepo := repository.NewUserRepository(pool, schema)
	contactRepo := repository.NewContactRepository(pool, schema)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		slog.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set; admin login disabled")
	}

	router := handler.NewRouter(handler.Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(userRepo, cfg.Admin)),
		Project: handler.NewProjectHandler(service.NewProjectService(projectRepo)),
		Contact: handler.NewContactHandler(service.NewContactService(contactRepo), cfg.Contact),
	}, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}
	if err := pool.Close(); err != nil {
		slog.Error("closing database pool", "error", err)
	}

	slog.Info("server stopped")
}
