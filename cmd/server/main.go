package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"safeCast/internal/config"
	"safeCast/internal/modules/coercion/application/handler"
	"safeCast/internal/modules/coercion/application/port"
	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/infrastructure"
	transport "safeCast/internal/modules/coercion/interface"
	"safeCast/internal/platform/broker"
	"safeCast/internal/shared/auth"
	"safeCast/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	_, logCloser, err := logging.Setup(os.Stdout, logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Directory: cfg.Logging.Directory,
		AddSource: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		return err
	}
	if !validator.Enabled() {
		slog.Warn("jwt auth disabled: no JWT_SECRET or JWT_PUBLIC_KEY")
	}

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()

	coerceUC := usecase.NewCoerceUseCase(cfg.Batch.MaxItems, cfg.Batch.Concurrency)
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	waitConsumers := func() {}
	if cfg.Kafka.Enabled {
		slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.String("requestTopic", cfg.Kafka.RequestTopic), slog.String("resultTopic", cfg.Kafka.ResultTopic))
		publisher, err := infrastructure.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ResultTopic)
		if err != nil {
			return err
		}
		defer publisher.Close()

		var resultPublisher port.ResultPublisher = publisher
		registry.Register(handler.NewCoercionRequestedHandler(cfg.Kafka.RequestTopic, coerceUC, broadcastUC, resultPublisher))
		waitConsumers = broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics())
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	transport.RegisterRoutes(e, transport.Dependencies{
		Hub:            hub,
		CoerceUC:       coerceUC,
		Validator:      validator,
		SendBuffer:     cfg.Websocket.SendBuffer,
		CommandTimeout: cfg.Websocket.CommandTimeout(),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serverErr:
		cancel()
		waitConsumers()
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	waitConsumers()
	return nil
}
