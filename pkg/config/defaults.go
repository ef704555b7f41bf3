package config

import "time"

const (
	DefaultMongoURI             = "mongodb://localhost:27017"
	DefaultMongoDatabaseName    = "medibook"
	DefaultMongoConnTimeout     = 10 * time.Second
	DefaultMongoUseTransactions = false

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// 08:00-18:00 in 15 minute steps
	DefaultSlotStartHour   = 8
	DefaultSlotEndHour     = 18
	DefaultSlotStepMinutes = 15
	DefaultBookingLockTTL  = 10 * time.Second

	DefaultNotificationMode      = NotificationModeDirect
	DefaultNotificationWorkers   = 4
	DefaultNotificationQueueSize = 256
	DefaultNotificationTimeout   = 5 * time.Second

	DefaultDirectoryCacheSize = 1024
	DefaultDefaultPhoneRegion = "US"

	DefaultAppointmentEventsTopic    = "appointment-events"
	DefaultAppointmentEventsDLQTopic = "dlq-appointment-events"
	DefaultNotificationConsumerGroup = "notifications"

	DefaultPaginationLimit = 100
)

const (
	NotificationModeDirect = "direct"
	NotificationModeKafka  = "kafka"
)
