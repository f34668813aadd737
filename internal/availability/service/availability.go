package service

import (
	"context"
	"errors"

	availabilityerrors "momtech/internal/availability/errors"
	"momtech/internal/availability/repository"
	"momtech/internal/availability/validator"
	"momtech/pkg/config"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/model"
)

type AvailabilityService interface {
	Get(ctx context.Context, caregiverID string) (*model.Availability, error)
	Save(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error)
}

type availabilityService struct {
	repo      repository.AvailabilityRepository
	validator *validator.AvailabilityValidator
	cfg       *config.Config
}

func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Get returns the stored weekly template. Caregivers who never published one
// get an empty template rather than a 404, the frontend treats both the same.
func (s *availabilityService) Get(ctx context.Context, caregiverID string) (*model.Availability, error) {
	if caregiverID == "" {
		return nil, apperrors.InvalidInput("Caregiver ID cannot be empty")
	}

	availability, err := s.repo.FindByCaregiver(ctx, caregiverID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return &model.Availability{CaregiverID: caregiverID}, nil
		}
		s.cfg.Log.Error("Failed to retrieve availability", "caregiver_id", caregiverID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}

	return availability, nil
}

func (s *availabilityService) Save(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error) {
	if caregiverID == "" {
		return nil, apperrors.InvalidInput("Caregiver ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Availability validation failed", "caregiver_id", caregiverID, "error", err)
		return nil, apperrors.Validation("Availability validation failed", map[string]any{"error": err.Error()})
	}

	availability, err := s.repo.Upsert(ctx, caregiverID, update)
	if err != nil {
		s.cfg.Log.Error("Failed to save availability", "caregiver_id", caregiverID, "error", err)
		return nil, apperrors.Internal("Failed to save availability", err)
	}

	s.cfg.Log.Info("Availability saved",
		"caregiver_id", caregiverID,
		"days", len(update.Days()),
	)
	return availability, nil
}
