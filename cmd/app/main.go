package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"warehouse/cmd"
	"warehouse/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: "warehouse",
		Level:       logger.ParseLevel(configs.LogLevel),
		Format:      configs.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Error(context.Background(), "Shutdown failed", closeErr)
		}
	}()

	if _, err = app.Engine().Refresh(ctx); err != nil {
		log.Warn(ctx, "Initial refresh failed, relying on the resync job", "error", err.Error())
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app.CreateRouter(), configs, log)
}

func startWebServer(ctx context.Context, e *echo.Echo, configs cmd.Config, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "HTTP server listening", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
