package main

import (
	"momtech/internal/payments/handler"
	"momtech/internal/payments/repository"
	"momtech/internal/payments/service"
	"momtech/internal/payments/validator"
	"momtech/pkg/app"
	"momtech/pkg/config"
)

const ServiceName = "payments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Payments service")
	paymentService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewPaymentHandler(paymentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.PaymentService {
	paymentValidator := validator.NewPaymentValidator(cfg.Log)
	paymentRepo := repository.NewMongoPaymentRepository(cfg)

	paymentService := service.NewPaymentService(
		paymentRepo,
		paymentValidator,
		cfg,
	)

	cfg.Log.Info("Payment service initialized", "database", cfg.MongoDatabaseName)
	return paymentService
}
