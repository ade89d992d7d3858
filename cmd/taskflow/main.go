package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/logger"
	"github.com/taskflow-dev/taskflow/internal/router"
	"github.com/taskflow-dev/taskflow/internal/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("taskflow exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	database, err := db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			appLogger.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	appLogger.Info().
		Str("driver", cfg.Database.Driver).
		Msg("connected to database")

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := services.New(database, appLogger, hasher)
	h := handlers.New(svc, tokens, appLogger, cfg.Cookie)
	r := router.NewRouter(h, tokens, svc, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         appLogger,
	})

	return serve(appLogger, cfg, r)
}

func serve(appLogger zerolog.Logger, cfg *config.Config, handler http.Handler) error {
	server := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Str("port", cfg.Port).
			Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case <-quit:
	}

	appLogger.Info().Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	appLogger.Info().Msg("shut down http server")
	return nil
}
