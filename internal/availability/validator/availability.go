package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"momtech/pkg/logger"
	"momtech/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AvailabilityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAvailabilityValidator(log *logger.Logger) *AvailabilityValidator {
	v := validator.New()

	if err := v.RegisterValidation("valid_time_range", validateTimeRange); err != nil {
		log.Fatal("Failed to register 'valid_time_range' validator", "error", err)
	}

	log.Info("Availability validator initialized successfully")

	return &AvailabilityValidator{
		validate: v,
		logger:   log,
	}
}

func validateTimeRange(fl validator.FieldLevel) bool {
	window := strings.TrimSpace(fl.Field().String())

	if window == "" {
		return true
	}

	if _, err := time.Parse("15:04", window); err != nil {
		return false
	}

	var hour, minute int
	if _, err := fmt.Sscanf(window, "%02d:%02d", &hour, &minute); err != nil {
		return false
	}
	if hour < 0 || hour > 23 {
		return false
	}
	if minute < 0 || minute > 59 {
		return false
	}

	return true
}

func (v *AvailabilityValidator) ValidateUpdate(update *model.AvailabilityUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if len(update.Days()) == 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "Days",
				Message: "at least one weekday must be provided",
			},
		}
	}

	return nil
}

func (v *AvailabilityValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "valid_time_range":
			message = fmt.Sprintf("%s must be a valid HH:MM time", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
