package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/shoe-store/internal/activity"
	"github.com/example/shoe-store/internal/config"
	"github.com/example/shoe-store/internal/infrastructure/kafka"
	"github.com/example/shoe-store/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFile := pflag.String("env-file", "", "optional .env file to load before reading the environment")
	pflag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load env file: %v", err)
		}
	}

	cfg := config.LoadEnv()

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 {
		zl.Fatal("KAFKA_BROKERS is required for the activity service")
	}

	zl.Info("starting activity service",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.GroupID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := activity.NewHandler(zl.Named("activity"))

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, zl.Named("consumer"))
	defer consumer.Close()

	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("consumer stopped", zap.Error(err))
	}

	stats := handler.Stats()
	zl.Info("activity service stopped",
		zap.Any("events", stats.Events),
		zap.Int("registered", stats.Registered),
		zap.Int("active_users", stats.ActiveUsers))
}
