package main

import (
	"context"
	"travelbook/internal/bookings/events"
	"travelbook/internal/bookings/handler"
	"travelbook/internal/bookings/repository"
	"travelbook/internal/bookings/service"
	"travelbook/internal/bookings/validator"
	"travelbook/pkg/app"
	"travelbook/pkg/config"
	mongodb "travelbook/pkg/db/mongo"
	"travelbook/pkg/kafka"
	kafka_config "travelbook/pkg/kafka/config"
	kafka_middleware "travelbook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName, config.DefaultAPIPort)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	if err := cfg.ValidateStore(); err != nil {
		cfg.Log.Fatal("Invalid store configuration", "error", err)
	}

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	cfg.Log.Info("Starting Bookings service")

	repo := openRepository(cfg)
	publisher := openPublisher(cfg, kafkaCfg)
	bookingService := initServices(cfg, repo, publisher)

	graphqlHandler, err := handler.NewGraphQLHandler(bookingService, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to build GraphQL handler", "error", err)
	}

	serverApp := app.NewApplication(cfg, graphqlHandler,
		app.WithReadiness(cfg.StoreBackend, repo.Ping),
		app.WithCloser("store", repo.Close),
		app.WithCloser("events", func(context.Context) error { return publisher.Close() }),
	)
	serverApp.Run()
}

// openRepository connects the configured backend or exits: the service is
// useless without its store.
func openRepository(cfg *config.Config) repository.BookingRepository {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		// Schema setup runs under cfg.WriteTimeout inside the constructor.
		repo, err := repository.NewSQLiteBookingRepository(context.Background(), cfg)
		if err != nil {
			cfg.Log.Fatal("Failed to open SQLite store", "path", cfg.SQLitePath, "error", err)
		}
		cfg.Log.Info("Connected to SQLite", "path", cfg.SQLitePath)
		return repo

	default:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
		defer cancel()

		client, err := mongodb.Connect(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
		if err != nil {
			cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		return repository.NewMongoBookingRepository(client, cfg)
	}
}

func openPublisher(cfg *config.Config, kafkaCfg *kafka_config.Config) events.Publisher {
	if !kafkaCfg.Enabled() {
		return events.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Booking events enabled", "topic", kafkaCfg.Topic, "brokers", kafkaCfg.Brokers)
	return events.NewKafkaPublisher(producer)
}

func initServices(cfg *config.Config, repo repository.BookingRepository, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingService := service.NewBookingService(
		repo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "backend", cfg.StoreBackend)
	return bookingService
}
