package main

import (
	appointmentshandler "medibook/internal/appointments/handler"
	appointmentsrepo "medibook/internal/appointments/repository"
	appointmentsservice "medibook/internal/appointments/service"
	appointmentsvalidator "medibook/internal/appointments/validator"
	doctorshandler "medibook/internal/doctors/handler"
	doctorsrepo "medibook/internal/doctors/repository"
	doctorsservice "medibook/internal/doctors/service"
	doctorsvalidator "medibook/internal/doctors/validator"
	"medibook/internal/notifications/dispatcher"
	notificationshandler "medibook/internal/notifications/handler"
	notificationsrepo "medibook/internal/notifications/repository"
	notificationsservice "medibook/internal/notifications/service"
	patientshandler "medibook/internal/patients/handler"
	patientsrepo "medibook/internal/patients/repository"
	patientsservice "medibook/internal/patients/service"
	patientsvalidator "medibook/internal/patients/validator"
	"medibook/internal/slots"
	usershandler "medibook/internal/users/handler"
	usersservice "medibook/internal/users/service"
	"medibook/pkg/app"
	"medibook/pkg/config"
	"medibook/pkg/contracts"
	"medibook/pkg/kafka"
	kafka_config "medibook/pkg/kafka/config"
	kafka_middleware "medibook/pkg/kafka/middleware"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")
	serverApp := app.NewApplication(cfg)
	handlers := initServices(cfg, serverApp)
	serverApp.SetApp(cfg.Client, handlers...)
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) []contracts.Handler {
	doctorRepo, err := doctorsrepo.NewCachedDoctorRepository(doctorsrepo.NewMongoDoctorRepository(cfg), cfg.DirectoryCacheSize)
	if err != nil {
		cfg.Log.Fatal("Failed to create doctor cache", "error", err)
	}
	patientRepo, err := patientsrepo.NewCachedPatientRepository(patientsrepo.NewMongoPatientRepository(cfg), cfg.DirectoryCacheSize)
	if err != nil {
		cfg.Log.Fatal("Failed to create patient cache", "error", err)
	}
	appointmentRepo := appointmentsrepo.NewMongoAppointmentRepository(cfg)
	lockRepo := appointmentsrepo.NewAppointmentLockRepository(cfg)
	notificationRepo := notificationsrepo.NewMongoNotificationRepository(cfg)

	doctorService := doctorsservice.NewDoctorService(doctorRepo, doctorsvalidator.NewDoctorValidator(cfg.Log), cfg)
	patientService := patientsservice.NewPatientService(patientRepo, patientsvalidator.NewPatientValidator(cfg.Log), cfg)
	userService := usersservice.NewUserService(doctorRepo, patientRepo, cfg)
	notificationService := notificationsservice.NewNotificationService(notificationRepo, userService, cfg)

	notifier := initDispatcher(cfg, serverApp, notificationService)

	grid := slots.GridFromConfig(cfg)
	resolver := slots.NewResolver(grid, doctorRepo, appointmentRepo, cfg.Log.Component("slots"))
	appointmentService := appointmentsservice.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		doctorRepo,
		patientRepo,
		resolver,
		appointmentsvalidator.NewAppointmentValidator(grid, cfg.Log),
		notifier,
		cfg,
		nil,
	)

	cfg.Log.Info("Appointment services initialized",
		"database", cfg.MongoDatabaseName,
		"notification_mode", cfg.NotificationMode,
	)

	return []contracts.Handler{
		appointmentshandler.NewAppointmentHandler(appointmentService, cfg.Log),
		doctorshandler.NewDoctorHandler(doctorService, cfg.Log),
		patientshandler.NewPatientHandler(patientService, cfg.Log),
		usershandler.NewUserHandler(userService, cfg.Log),
		notificationshandler.NewNotificationHandler(notificationService, cfg.Log),
	}
}

// initDispatcher records notifications in-process, or publishes them to Kafka for
// cmd/notifications when NOTIFICATION_MODE=kafka.
func initDispatcher(cfg *config.Config, serverApp *app.Application, recorder dispatcher.Recorder) *dispatcher.Dispatcher {
	publisher := dispatcher.NewDirectPublisher(recorder)

	if cfg.NotificationMode == config.NotificationModeKafka {
		kafkaCfg, err := kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kafkaCfg.LogConfiguration(cfg.Log)

		producer, err := kafka.NewProducer(kafkaCfg, cfg.AppointmentEventsTopic, cfg.AppointmentEventsDLQTopic, cfg.Log.Component("kafka"))
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		publisher = dispatcher.NewKafkaPublisher(producer, ServiceName)
		defer serverApp.AddWorker(producerWorker{producer: producer, cfg: cfg})
	}

	d := dispatcher.NewDispatcher(
		publisher,
		cfg.NotificationWorkers,
		cfg.NotificationQueueSize,
		cfg.NotificationTimeout,
		cfg.Log.Component("dispatcher"),
	)
	serverApp.AddWorker(d)
	return d
}

// producerWorker closes the producer once the dispatcher has drained.
type producerWorker struct {
	producer *kafka.Producer
	cfg      *config.Config
}

func (w producerWorker) Stop() {
	if err := w.producer.Close(); err != nil {
		w.cfg.Log.Error("Failed to close Kafka producer", "error", err)
	}
}
