package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/you/quezi/internal/config"
	"github.com/you/quezi/internal/infrastructure/database"
	"github.com/you/quezi/internal/infrastructure/messaging"
	"github.com/you/quezi/internal/infrastructure/notifications"
	"github.com/you/quezi/internal/infrastructure/repositories"
	"github.com/you/quezi/internal/logging"
	"github.com/you/quezi/internal/notifier"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.RabbitURL == "" {
		log.Fatal("config: rabbitmq url is required")
	}

	logger := logging.Must(cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DSN, false)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	handler := notifier.NewHandler(
		repositories.NewUserRepository(db),
		notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger),
		logger,
	)

	consumer := messaging.NewConsumer(messaging.ConsumerConfig{
		URL:         cfg.RabbitURL,
		Exchange:    cfg.RabbitExchange,
		Queue:       cfg.RabbitQueue,
		Bindings:    notifier.Bindings,
		Prefetch:    cfg.RabbitPrefetch,
		ConsumerTag: "quezi-notifier",
	}, handler, logger)
	if err := consumer.Connect(); err != nil {
		logger.Fatal("rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	logger.Info("notifier consuming", zap.String("queue", cfg.RabbitQueue), zap.Strings("keys", notifier.Bindings))
	if err := consumer.Run(ctx); err != nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
}
