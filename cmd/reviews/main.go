package main

import (
	"momtech/internal/reviews/handler"
	"momtech/internal/reviews/repository"
	"momtech/internal/reviews/service"
	"momtech/internal/reviews/validator"
	"momtech/pkg/app"
	"momtech/pkg/config"
)

const ServiceName = "reviews"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reviews service")
	reviewService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReviewHandler(reviewService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReviewService {
	reviewValidator := validator.NewReviewValidator(cfg.Log)
	reviewRepo := repository.NewMongoReviewRepository(cfg)

	reviewService := service.NewReviewService(
		reviewRepo,
		reviewValidator,
		cfg,
	)

	cfg.Log.Info("Review service initialized", "database", cfg.MongoDatabaseName)
	return reviewService
}
