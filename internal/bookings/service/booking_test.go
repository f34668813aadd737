package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "momtech/internal/bookings/errors"
	"momtech/internal/bookings/validator"
	"momtech/pkg/config"
	mongotx "momtech/pkg/db/mongo"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/logger"
	"momtech/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repository for testing
type mockBookingRepository struct {
	createFunc           func(ctx context.Context, booking *model.Booking) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Booking, error)
	findByCaregiverFunc  func(ctx context.Context, caregiverID string, limit int, offset int64) ([]*model.BookingWithRequester, error)
	countByCaregiverFunc func(ctx context.Context, caregiverID string) (int64, error)
	updateStatusFunc     func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error)
	attachRatingFunc     func(ctx context.Context, id string, rating int, review string) (*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByCaregiver(ctx context.Context, caregiverID string, limit int, offset int64) ([]*model.BookingWithRequester, error) {
	if m.findByCaregiverFunc != nil {
		return m.findByCaregiverFunc(ctx, caregiverID, limit, offset)
	}
	return []*model.BookingWithRequester{}, nil
}

func (m *mockBookingRepository) CountByCaregiver(ctx context.Context, caregiverID string) (int64, error) {
	if m.countByCaregiverFunc != nil {
		return m.countByCaregiverFunc(ctx, caregiverID)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) AttachRating(ctx context.Context, id string, rating int, review string) (*model.Booking, error) {
	if m.attachRatingFunc != nil {
		return m.attachRatingFunc(ctx, id, rating, review)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	// Execute the function with a fake session context
	sessCtx := mongo.NewSessionContext(ctx, nil)
	return fn(sessCtx)
}

type mockAvailabilityReader struct {
	findByCaregiverFunc func(ctx context.Context, caregiverID string) (*model.Availability, error)
}

func (m *mockAvailabilityReader) FindByCaregiver(ctx context.Context, caregiverID string) (*model.Availability, error) {
	if m.findByCaregiverFunc != nil {
		return m.findByCaregiverFunc(ctx, caregiverID)
	}
	return nil, nil
}

type mockPublisher struct {
	created       []*model.Booking
	statusChanged []*model.Booking
	rated         []*model.Booking
}

func (m *mockPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	m.created = append(m.created, booking)
	return nil
}

func (m *mockPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking) error {
	m.statusChanged = append(m.statusChanged, booking)
	return nil
}

func (m *mockPublisher) BookingRated(ctx context.Context, booking *model.Booking) error {
	m.rated = append(m.rated, booking)
	return nil
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(t *testing.T, repo *mockBookingRepository, availability *mockAvailabilityReader, publisher *mockPublisher) *bookingService {
	t.Helper()
	cfg := newTestConfig(t)
	svc := &bookingService{
		repo:      repo,
		validator: validator.NewBookingValidator(cfg.Log),
		cfg:       cfg,
	}
	if availability != nil {
		svc.availability = availability
	}
	if publisher != nil {
		svc.publisher = publisher
	}
	return svc
}

func validBooking() *model.Booking {
	return &model.Booking{
		RequesterID:      "507f1f77bcf86cd799439011",
		CaregiverID:      "507f1f77bcf86cd799439012",
		Date:             "2026-09-15",
		Time:             "18:00-22:00",
		FamilyName:       "Cohen",
		NumberOfChildren: 2,
		Address:          "12 Herzl St, Tel Aviv",
	}
}

func TestCreate_AppliesDefaultsAndSanitizes(t *testing.T) {
	var captured *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = "507f1f77bcf86cd799439099"
			captured = booking
			return nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, repo, nil, publisher)

	booking := validBooking()
	booking.FamilyName = "  Cohen   Family "
	booking.Address = " 12 Herzl St,\tTel Aviv "

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured == nil {
		t.Fatal("repository Create was not called")
	}
	if captured.Status != config.Pending {
		t.Errorf("expected default status %q, got %q", config.Pending, captured.Status)
	}
	if captured.FamilyName != "Cohen Family" {
		t.Errorf("expected sanitized family name, got %q", captured.FamilyName)
	}
	if captured.Address != "12 Herzl St, Tel Aviv" {
		t.Errorf("expected sanitized address, got %q", captured.Address)
	}
	if len(publisher.created) != 1 {
		t.Errorf("expected 1 created event, got %d", len(publisher.created))
	}
}

func TestCreate_IgnoresClientLifecycleFields(t *testing.T) {
	var captured *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			captured = booking
			return nil
		},
	}
	svc := newTestService(t, repo, nil, nil)

	rating := 5
	booking := validBooking()
	booking.ID = "507f1f77bcf86cd799439055"
	booking.Status = config.Completed
	booking.Rating = &rating
	booking.Review = "preloaded review"

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured == nil {
		t.Fatal("repository Create was not called")
	}
	if captured.Status != config.Pending {
		t.Errorf("expected status %q, got %q", config.Pending, captured.Status)
	}
	if captured.Rating != nil {
		t.Errorf("expected no rating on creation, got %d", *captured.Rating)
	}
	if captured.Review != "" {
		t.Errorf("expected no review on creation, got %q", captured.Review)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	created := false
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			created = true
			return nil
		},
	}
	svc := newTestService(t, repo, nil, nil)

	booking := validBooking()
	booking.CaregiverID = "not-an-object-id"
	booking.NumberOfChildren = 0

	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 422 {
		t.Errorf("expected status 422, got %d", appErr.StatusCode())
	}
	if created {
		t.Error("repository Create should not be called on validation failure")
	}
}

func TestCreate_SameRequesterAndCaregiver(t *testing.T) {
	svc := newTestService(t, &mockBookingRepository{}, nil, nil)

	booking := validBooking()
	booking.CaregiverID = booking.RequesterID

	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestCreate_UnavailableDayIsAdvisoryOnly(t *testing.T) {
	repo := &mockBookingRepository{}
	availability := &mockAvailabilityReader{
		findByCaregiverFunc: func(ctx context.Context, caregiverID string) (*model.Availability, error) {
			return &model.Availability{
				CaregiverID: caregiverID,
				Tuesday:     &model.DayAvailability{Available: false},
			}, nil
		},
	}
	svc := newTestService(t, repo, availability, nil)

	booking := validBooking()
	booking.Date = "2026-09-15" // a Tuesday

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("booking on unavailable day must still succeed, got: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(t, repo, nil, nil)

	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439099")
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 404 {
		t.Errorf("expected status 404, got %d", appErr.StatusCode())
	}
}

func TestGetByCaregiver_CountAndFind(t *testing.T) {
	repo := &mockBookingRepository{
		countByCaregiverFunc: func(ctx context.Context, caregiverID string) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findByCaregiverFunc: func(ctx context.Context, caregiverID string, limit int, offset int64) ([]*model.BookingWithRequester, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.BookingWithRequester{
				{Booking: model.Booking{ID: "507f1f77bcf86cd799439099"}},
			}, nil
		},
	}
	svc := newTestService(t, repo, nil, nil)

	// Run with -race flag to detect unsynchronized access
	for i := 0; i < 10; i++ {
		bookings, count, err := svc.GetByCaregiver(context.Background(), "507f1f77bcf86cd799439012", 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(bookings) != 1 {
			t.Errorf("iteration %d: expected 1 booking, got %d", i, len(bookings))
		}
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	var capturedStatus string
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
			capturedStatus = status
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: capturedStatus}, nil
		},
	}
	svc := newTestService(t, repo, nil, nil)

	booking, err := svc.UpdateStatus(context.Background(), "507f1f77bcf86cd799439099", &model.StatusUpdate{Status: config.Confirmed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedStatus != config.Confirmed {
		t.Errorf("expected status %q, got %q", config.Confirmed, capturedStatus)
	}
	if booking == nil || booking.Status != config.Confirmed {
		t.Errorf("expected updated booking with status %q, got %+v", config.Confirmed, booking)
	}
}

func TestUpdateStatus_CompletedIsTerminal(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{MatchedCount: 0}, nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: config.Completed}, nil
		},
	}
	svc := newTestService(t, repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "507f1f77bcf86cd799439099", &model.StatusUpdate{Status: config.Confirmed})
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 409 {
		t.Errorf("expected status 409, got %d", appErr.StatusCode())
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{MatchedCount: 0}, nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(t, repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "507f1f77bcf86cd799439099", &model.StatusUpdate{Status: config.Rejected})
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 404 {
		t.Errorf("expected status 404, got %d", appErr.StatusCode())
	}
}

func TestUpdateStatus_PublishesStatusChangedEvent(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: config.Confirmed}, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, repo, nil, publisher)

	booking, err := svc.UpdateStatus(context.Background(), "507f1f77bcf86cd799439099", &model.StatusUpdate{Status: config.Confirmed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking == nil || booking.Status != config.Confirmed {
		t.Fatalf("expected updated booking with status confirmed, got %+v", booking)
	}
	if len(publisher.statusChanged) != 1 {
		t.Fatalf("expected 1 status changed event, got %d", len(publisher.statusChanged))
	}
	if publisher.statusChanged[0].Status != config.Confirmed {
		t.Errorf("expected event booking status confirmed, got %q", publisher.statusChanged[0].Status)
	}
}

func TestUpdateStatus_RejectsCompletedTarget(t *testing.T) {
	svc := newTestService(t, &mockBookingRepository{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "507f1f77bcf86cd799439099", &model.StatusUpdate{Status: config.Completed})
	if err == nil {
		t.Fatal("expected validation error for completed target status")
	}
}

func TestRate_MarksCompleted(t *testing.T) {
	rating := 5
	repo := &mockBookingRepository{
		attachRatingFunc: func(ctx context.Context, id string, r int, review string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: config.Completed, Rating: &rating, Review: review}, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, repo, nil, publisher)

	booking, err := svc.Rate(context.Background(), "507f1f77bcf86cd799439099", &model.RatingSubmission{
		Rating: 5,
		Review: "  great   with the kids ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != config.Completed {
		t.Errorf("expected status %q, got %q", config.Completed, booking.Status)
	}
	if booking.Review != "great with the kids" {
		t.Errorf("expected sanitized review, got %q", booking.Review)
	}
	if len(publisher.rated) != 1 {
		t.Errorf("expected 1 rated event, got %d", len(publisher.rated))
	}
}

func TestRate_InvalidRating(t *testing.T) {
	svc := newTestService(t, &mockBookingRepository{}, nil, nil)

	_, err := svc.Rate(context.Background(), "507f1f77bcf86cd799439099", &model.RatingSubmission{Rating: 6})
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 422 {
		t.Errorf("expected status 422, got %d", appErr.StatusCode())
	}
}
