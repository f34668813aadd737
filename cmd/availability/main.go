package main

import (
	"momtech/internal/availability/handler"
	"momtech/internal/availability/repository"
	"momtech/internal/availability/service"
	"momtech/internal/availability/validator"
	"momtech/pkg/app"
	"momtech/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	availabilityValidator := validator.NewAvailabilityValidator(cfg.Log)
	availabilityRepo := repository.NewMongoAvailabilityRepository(cfg)

	availabilityService := service.NewAvailabilityService(
		availabilityRepo,
		availabilityValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
