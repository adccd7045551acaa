package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/config"
	deliveryhttp "storefront-service/internal/delivery/http"
	"storefront-service/internal/infrastructure/kafka"
	"storefront-service/internal/infrastructure/postgres"
	"storefront-service/internal/infrastructure/s3store"
	"storefront-service/internal/logger"
	"storefront-service/internal/usecase"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg.LogLevel)
	slog.Info("Application starting")
	slog.Info("Configuration loaded",
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"kafka_topic", cfg.KafkaTopic,
		"s3_endpoint", cfg.S3Endpoint,
		"server_port", cfg.ServerPort)

	db, err := postgres.ConnectToDB(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBIdleConns)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	repo := postgres.NewRepository(db)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), cfg.StorageTimeout)
	defer startupCancel()

	if err := repo.EnsureSchema(startupCtx); err != nil {
		slog.Error("Failed to ensure storage schema", "error", err)
		os.Exit(1)
	}

	s3Client, err := s3store.NewClient(startupCtx, s3store.Options{
		Endpoint:     cfg.S3Endpoint,
		Region:       cfg.S3Region,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		slog.Error("Failed to create object storage client", "error", err)
		os.Exit(1)
	}

	blobStore, err := s3store.NewBlobStore(startupCtx, s3Client, cfg.BlobBucket, cfg.S3Endpoint)
	if err != nil {
		slog.Error("Failed to initialize blob store", "error", err)
		os.Exit(1)
	}

	documentStore, err := s3store.NewDocumentStore(startupCtx, s3Client, cfg.DocsBucket)
	if err != nil {
		slog.Error("Failed to initialize document store", "error", err)
		os.Exit(1)
	}

	queue := kafka.NewOrderQueueProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	customerService := usecase.NewCustomerService(repo)
	productService := usecase.NewProductService(repo)
	orderService := usecase.NewOrderService(repo, queue)

	app := usecase.NewApplication(
		cfg,
		repo,
		queue,
		kafka.NewOrderConsumer(
			cfg.KafkaBrokers,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			repo,
		),
		deliveryhttp.NewServer(
			cfg.ServerPort,
			cfg.StorageTimeout,
			customerService,
			productService,
			orderService,
			blobStore,
			documentStore,
		),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("Received shutdown signal", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown application gracefully", "error", err)
		os.Exit(1)
	}

	slog.Info("Application shutdown completed")
}
