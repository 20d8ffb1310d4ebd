package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"article-crew/internal/di"
	"article-crew/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	container, err := di.NewContainer(di.ConfigFromEnv(envService))
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	addr := envService.GetWithDefault("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           container.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			container.Logger.Error("HTTP server failed", "error", err)
			container.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	grace := envService.GetDuration("SHUTDOWN_GRACE", 5*time.Second)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	container.Logger.Info("Shutting down", "grace", grace.String())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", "error", err)
	}
}
