package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devanshg/splitmate/internal/auth"
	"github.com/devanshg/splitmate/internal/config"
	"github.com/devanshg/splitmate/internal/handler"
	"github.com/devanshg/splitmate/internal/notify"
	"github.com/devanshg/splitmate/internal/service"
	"github.com/devanshg/splitmate/internal/storage/sqlite"
	"github.com/devanshg/splitmate/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	slog.Info("Store opened", "path", cfg.Database.Path)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	var notifier notify.Notifier = notify.Disabled{}
	if cfg.Notify.FCMServerKey != "" {
		notifier = notify.NewFCMClient(cfg.Notify.FCMEndpoint, cfg.Notify.FCMServerKey)
		slog.Info("Push notifications enabled")
	}
	worker := notify.NewWorker(notifier, cfg.Notify.QueueSize)
	worker.Start()
	defer worker.Shutdown()

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           handler.NewAuthHandler(service.NewAuthService(authenticator, jwtManager)),
		Expenses:       handler.NewExpenseHandler(service.NewExpenseService(store, worker)),
		Groups:         handler.NewGroupHandler(service.NewGroupService(store)),
		JWTManager:     jwtManager,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
