package main

import (
	"momtech/internal/bookings/events"
	"momtech/internal/bookings/handler"
	"momtech/internal/bookings/repository"
	"momtech/internal/bookings/service"
	"momtech/internal/bookings/validator"
	"momtech/pkg/app"
	"momtech/pkg/config"
	"momtech/pkg/kafka"
	kafka_config "momtech/pkg/kafka/config"
	kafka_middleware "momtech/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService, publisher := initServices(cfg)
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				cfg.Log.Warn("Failed to close event publisher", "error", err)
			}
		}()
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, *events.KafkaPublisher) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	availabilityReader := repository.NewMongoAvailabilityReader(cfg)

	var publisher *events.KafkaPublisher
	var eventPublisher service.EventPublisher
	if kafka_config.Enabled() {
		kafkaCfg := kafka_config.Load()
		producer, err := kafka.NewProducer(kafkaCfg, kafka_config.TopicBookingEvents, kafka_config.TopicBookingEvents+"-dlq")
		if err != nil {
			cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
		}
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
		publisher = events.NewKafkaPublisher(producer)
		eventPublisher = publisher
		cfg.Log.Info("Booking event publishing enabled", "topic", kafka_config.TopicBookingEvents)
	} else {
		cfg.Log.Info("Booking event publishing disabled")
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		availabilityReader,
		eventPublisher,
		bookingValidator,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, publisher
}
