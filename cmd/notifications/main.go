package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	doctorsrepo "medibook/internal/doctors/repository"
	"medibook/internal/notifications/consumer"
	notificationsrepo "medibook/internal/notifications/repository"
	notificationsservice "medibook/internal/notifications/service"
	patientsrepo "medibook/internal/patients/repository"
	usersservice "medibook/internal/users/service"
	"medibook/pkg/config"
	"medibook/pkg/kafka"
	kafka_config "medibook/pkg/kafka/config"
	kafka_middleware "medibook/pkg/kafka/middleware"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	userService := usersservice.NewUserService(
		doctorsrepo.NewMongoDoctorRepository(cfg),
		patientsrepo.NewMongoPatientRepository(cfg),
		cfg,
	)
	notificationService := notificationsservice.NewNotificationService(
		notificationsrepo.NewMongoNotificationRepository(cfg),
		userService,
		cfg,
	)

	c, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.AppointmentEventsTopic,
		cfg.NotificationConsumerGroup,
		cfg.AppointmentEventsDLQTopic,
		consumer.NewAppointmentBookedHandler(notificationService, cfg.Log.Component("consumer")),
		cfg.Log.Component("kafka"),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	c.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting Notifications consumer",
		"topic", cfg.AppointmentEventsTopic,
		"group", cfg.NotificationConsumerGroup,
	)
	if err := c.Start(ctx); err != nil {
		cfg.Log.Error("Kafka consumer stopped with error", "error", err)
	}

	if err := c.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Notifications consumer stopped")
}
