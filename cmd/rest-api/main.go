package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sportlink/sportlink-api/cmd/rest-api/routing"
	jobs "github.com/sportlink/sportlink-api/pkg/app/jobs"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	ioc "github.com/sportlink/sportlink-api/pkg/infra/ioc"
	kafka_infra "github.com/sportlink/sportlink-api/pkg/infra/kafka"
)

const pendingDrainInterval = 30 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	slog.SetDefault(logger)

	builder := ioc.NewContainerBuilder()

	c := builder.WithEnvFile().With(ioc.InjectMongoDB).WithKafka().WithRepositories().WithInboundPorts().Build()

	defer builder.Close(c)

	var config common.Config
	if err := c.Resolve(&config); err != nil {
		slog.ErrorContext(ctx, "Failed to resolve config", "error", err)
		panic(err)
	}

	// Background drainer for deferred and stale rating work
	var statusRepository rating_out.ELOStatusRepository
	if err := c.Resolve(&statusRepository); err != nil {
		slog.ErrorContext(ctx, "Failed to resolve ELOStatusRepository", "error", err)
		panic(err)
	}
	var processor activity_in.PendingProcessor
	if err := c.Resolve(&processor); err != nil {
		slog.ErrorContext(ctx, "Failed to resolve PendingProcessor", "error", err)
		panic(err)
	}
	eloJob := jobs.NewELOProcessingJob(statusRepository, processor, pendingDrainInterval)
	go eloJob.Run(ctx)
	slog.InfoContext(ctx, "Rating processing job started", "server_id", config.ServerID)

	// With a broker configured, queued activities wake the drainer immediately.
	var kafkaClient *kafka_infra.Client
	if err := c.Resolve(&kafkaClient); err == nil && kafkaClient != nil {
		consumer := kafka_infra.NewConsumer(kafkaClient, kafka_infra.TopicELOPending, "elo-workers", func(msgCtx context.Context, key, value []byte) error {
			event, err := kafka_infra.DecodeELOPendingEvent(value)
			if err != nil {
				return err
			}
			eloJob.HandleQueued(msgCtx, event.ActivityID)
			return nil
		})
		go consumer.Run(ctx)
		slog.InfoContext(ctx, "Rating queue consumer started", "topic", kafka_infra.TopicELOPending)
	}

	// Nightly change-log retention sweep
	var changeLogRepository delta_out.ChangeLogRepository
	if err := c.Resolve(&changeLogRepository); err != nil {
		slog.ErrorContext(ctx, "Failed to resolve ChangeLogRepository", "error", err)
		panic(err)
	}
	cleanupJob := jobs.NewChangeLogCleanupJob(changeLogRepository, config.ChangeLogRetentionDays)
	if err := cleanupJob.Start(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to schedule change log cleanup", "error", err)
		panic(err)
	}

	router := routing.NewRouter(ctx, c)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.InfoContext(ctx, "Starting server on port "+port)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handler for Kubernetes SIGTERM
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-shutdownChan
		slog.InfoContext(ctx, "Received shutdown signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		slog.InfoContext(ctx, "Shutting down server gracefully...")
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "Server shutdown error", "error", err)
		}

		// Cancel main context to stop background jobs
		cancel()
		slog.InfoContext(ctx, "Server shutdown complete")
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.ErrorContext(ctx, "Server error", "err", err)
		os.Exit(1)
	}
}
