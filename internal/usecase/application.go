package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"storefront-service/internal/config"
	"storefront-service/pkg/interfaces"
)

type Application struct {
	repo     interfaces.EntityStore
	queue    interfaces.OrderQueue
	consumer interfaces.QueueConsumer
	http     interfaces.HTTPServer
	config   *config.Config
}

func NewApplication(config *config.Config, repo interfaces.EntityStore, queue interfaces.OrderQueue, consumer interfaces.QueueConsumer, http interfaces.HTTPServer) *Application {
	return &Application{
		repo:     repo,
		queue:    queue,
		consumer: consumer,
		http:     http,
		config:   config,
	}
}

func (app *Application) Start(ctx context.Context) error {
	if err := app.consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start order consumer: %w", err)
	}

	if err := app.http.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (app *Application) Shutdown(ctx context.Context) error {
	if err := app.http.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := app.consumer.Shutdown(ctx); err != nil {
		slog.Error("Order consumer shutdown error", "error", err)
	}

	if err := app.queue.Close(); err != nil {
		slog.Error("Order queue close error", "error", err)
	}

	return nil
}
