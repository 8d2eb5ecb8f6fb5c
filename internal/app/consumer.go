package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-school/internal/events"
	"go-school/internal/messaging/kafka/consumer"
	"go-school/internal/notification"
	"go-school/internal/notification/whatsapp"
	"go-school/internal/school"
	"go-school/internal/settings"
	"go-school/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	schoolRepo := school.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	settingsService := settings.NewService(settingsRepo, redisClient)
	deliveryLogs := notification.NewDeliveryLogRepository(gormDB)
	whatsappClient := whatsapp.NewClient(logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.AlertRaisedTopic,
		GroupID:        "go-school-alert-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAlertNotifications(
		ctx,
		reader,
		schoolRepo,
		settingsService,
		whatsappClient,
		deliveryLogs,
		logger,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
