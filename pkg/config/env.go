package config

const (
	EnvMongoURI             = "MONGO_URI"
	EnvMongoDatabaseName    = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout     = "MONGO_CONN_TIMEOUT"
	EnvMongoUseTransactions = "MONGO_USE_TRANSACTIONS"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotStartHour   = "SLOT_START_HOUR"
	EnvSlotEndHour     = "SLOT_END_HOUR"
	EnvSlotStepMinutes = "SLOT_STEP_MINUTES"
	EnvBookingLockTTL  = "BOOKING_LOCK_TTL"

	EnvNotificationMode      = "NOTIFICATION_MODE"
	EnvNotificationWorkers   = "NOTIFICATION_WORKERS"
	EnvNotificationQueueSize = "NOTIFICATION_QUEUE_SIZE"
	EnvNotificationTimeout   = "NOTIFICATION_TIMEOUT"

	EnvDirectoryCacheSize = "DIRECTORY_CACHE_SIZE"
	EnvDefaultPhoneRegion = "DEFAULT_PHONE_REGION"

	EnvAppointmentEventsTopic    = "APPOINTMENT_EVENTS_TOPIC"
	EnvAppointmentEventsDLQTopic = "APPOINTMENT_EVENTS_DLQ_TOPIC"
	EnvNotificationConsumerGroup = "NOTIFICATION_CONSUMER_GROUP"
)
