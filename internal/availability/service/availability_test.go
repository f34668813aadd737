package service

import (
	"context"
	"testing"
	"time"

	availabilityerrors "momtech/internal/availability/errors"
	"momtech/internal/availability/validator"
	"momtech/pkg/config"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/logger"
	"momtech/pkg/model"
)

type mockAvailabilityRepository struct {
	findByCaregiverFunc func(ctx context.Context, caregiverID string) (*model.Availability, error)
	upsertFunc          func(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error)
}

func (m *mockAvailabilityRepository) FindByCaregiver(ctx context.Context, caregiverID string) (*model.Availability, error) {
	if m.findByCaregiverFunc != nil {
		return m.findByCaregiverFunc(ctx, caregiverID)
	}
	return nil, availabilityerrors.ErrNotFound
}

func (m *mockAvailabilityRepository) Upsert(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, caregiverID, update)
	}
	return &model.Availability{CaregiverID: caregiverID}, nil
}

func newTestService(t *testing.T, repo *mockAvailabilityRepository) *availabilityService {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &availabilityService{
		repo:      repo,
		validator: validator.NewAvailabilityValidator(log),
		cfg:       cfg,
	}
}

func TestGet_MissingTemplateReturnsEmpty(t *testing.T) {
	svc := newTestService(t, &mockAvailabilityRepository{})

	availability, err := svc.Get(context.Background(), "507f1f77bcf86cd799439012")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if availability.CaregiverID != "507f1f77bcf86cd799439012" {
		t.Errorf("expected caregiver id on empty template, got %q", availability.CaregiverID)
	}
	if availability.Monday != nil || availability.Sunday != nil {
		t.Error("expected empty template with no weekday windows")
	}
}

func TestGet_ReturnsStoredTemplate(t *testing.T) {
	repo := &mockAvailabilityRepository{
		findByCaregiverFunc: func(ctx context.Context, caregiverID string) (*model.Availability, error) {
			return &model.Availability{
				CaregiverID: caregiverID,
				Monday:      &model.DayAvailability{Available: true, StartTime: "08:00", EndTime: "16:00"},
			}, nil
		},
	}
	svc := newTestService(t, repo)

	availability, err := svc.Get(context.Background(), "507f1f77bcf86cd799439012")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if availability.Monday == nil || !availability.Monday.Available {
		t.Error("expected stored monday window")
	}
}

func TestSave_PartialUpdatePassesOnlyProvidedDays(t *testing.T) {
	var captured *model.AvailabilityUpdate
	repo := &mockAvailabilityRepository{
		upsertFunc: func(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error) {
			captured = update
			return &model.Availability{CaregiverID: caregiverID}, nil
		},
	}
	svc := newTestService(t, repo)

	update := &model.AvailabilityUpdate{
		Tuesday: &model.DayAvailability{Available: true, StartTime: "09:00", EndTime: "17:00"},
		Friday:  &model.DayAvailability{Available: false},
	}

	if _, err := svc.Save(context.Background(), "507f1f77bcf86cd799439012", update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := captured.Days()
	if len(days) != 2 {
		t.Fatalf("expected 2 provided days, got %d", len(days))
	}
	if _, ok := days["tuesday"]; !ok {
		t.Error("expected tuesday in provided days")
	}
	if _, ok := days["friday"]; !ok {
		t.Error("expected friday in provided days")
	}
}

func TestSave_EmptyUpdateRejected(t *testing.T) {
	svc := newTestService(t, &mockAvailabilityRepository{})

	_, err := svc.Save(context.Background(), "507f1f77bcf86cd799439012", &model.AvailabilityUpdate{})
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 422 {
		t.Errorf("expected status 422, got %d", appErr.StatusCode())
	}
}

func TestSave_InvalidTimeWindow(t *testing.T) {
	svc := newTestService(t, &mockAvailabilityRepository{})

	update := &model.AvailabilityUpdate{
		Monday: &model.DayAvailability{Available: true, StartTime: "25:99"},
	}

	_, err := svc.Save(context.Background(), "507f1f77bcf86cd799439012", update)
	if err == nil {
		t.Fatal("expected validation error for malformed time window")
	}
}
