package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	bookingserrors "momtech/internal/bookings/errors"
	"momtech/internal/bookings/repository"
	"momtech/internal/bookings/validator"
	"momtech/pkg/config"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/model"
	"momtech/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByCaregiver(ctx context.Context, caregiverID string, limit int, offset int64) ([]*model.BookingWithRequester, int64, error)
	UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error)
	Rate(ctx context.Context, id string, submission *model.RatingSubmission) (*model.Booking, error)
}

// EventPublisher emits booking lifecycle events. Implementations must be safe
// for concurrent use; a nil publisher disables publishing.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingStatusChanged(ctx context.Context, booking *model.Booking) error
	BookingRated(ctx context.Context, booking *model.Booking) error
}

type bookingService struct {
	repo         repository.BookingRepository
	availability repository.AvailabilityReader
	publisher    EventPublisher
	validator    *validator.BookingValidator
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	availability repository.AvailabilityReader,
	publisher EventPublisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		publisher:    publisher,
		validator:    validator,
		cfg:          cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	s.warnIfUnavailable(ctx, booking)

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publish(ctx, booking, func(p EventPublisher) error { return p.BookingCreated(ctx, booking) })

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"caregiver_id", booking.CaregiverID,
		"date", booking.Date,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByCaregiver(ctx context.Context, caregiverID string, limit int, offset int64) ([]*model.BookingWithRequester, int64, error) {
	if caregiverID == "" {
		return nil, 0, apperrors.InvalidInput("Caregiver ID cannot be empty")
	}

	var count int64
	var bookings []*model.BookingWithRequester
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByCaregiver(ctx, caregiverID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings by caregiver",
				"caregiver_id", caregiverID,
				"error", errCount,
			)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByCaregiver(ctx, caregiverID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings by caregiver",
				"caregiver_id", caregiverID,
				"limit", limit,
				"offset", offset,
				"error", errFind,
			)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		s.cfg.Log.Warn("Status update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid status update", map[string]any{"error": err.Error()})
	}

	// The conditional update and the follow-up read that tells a missing
	// booking apart from a completed one must see the same document state.
	var updated *model.Booking
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		result, err := s.repo.UpdateStatus(sessCtx, id, update.Status)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
			return apperrors.Internal("Failed to update booking status", err)
		}

		if result.MatchedCount == 0 {
			booking, findErr := s.repo.FindByID(sessCtx, id)
			if findErr != nil {
				if errors.Is(findErr, bookingserrors.ErrNotFound) {
					return apperrors.NotFoundWithID("Booking", id)
				}
				return apperrors.Internal("Failed to check booking existence", findErr)
			}
			if booking.Status == config.Completed {
				return apperrors.Conflict("Completed bookings cannot change status")
			}
			return apperrors.NotFoundWithID("Booking", id)
		}

		booking, findErr := s.repo.FindByID(sessCtx, id)
		if findErr != nil {
			return apperrors.Internal("Failed to load updated booking", findErr)
		}
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated, func(p EventPublisher) error { return p.BookingStatusChanged(ctx, updated) })

	s.cfg.Log.Info("Booking status updated", "id", id, "status", update.Status)
	return updated, nil
}

func (s *bookingService) Rate(ctx context.Context, id string, submission *model.RatingSubmission) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateRating(submission); err != nil {
		s.cfg.Log.Warn("Rating validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid rating submission", map[string]any{"error": err.Error()})
	}

	review := sanitizer.TrimAndNormalize(submission.Review)

	booking, err := s.repo.AttachRating(ctx, id, submission.Rating, review)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to attach rating", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to attach rating", err)
	}

	s.publish(ctx, booking, func(p EventPublisher) error { return p.BookingRated(ctx, booking) })

	s.cfg.Log.Info("Booking rated", "id", id, "rating", submission.Rating)
	return booking, nil
}

// --- Helpers ---

// applyDefaults resets the server-owned lifecycle fields. Creation always
// starts at pending with no rating or review, whatever the payload carried.
func (s *bookingService) applyDefaults(b *model.Booking) {
	b.ID = ""
	b.Status = config.Pending
	b.Rating = nil
	b.Review = ""
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.FamilyName = sanitizer.NormalizeName(b.FamilyName)
	b.Address = sanitizer.NormalizeAddress(b.Address)
	b.Time = sanitizer.TrimAndNormalize(b.Time)
	b.SpecialInstructions = sanitizer.TrimAndNormalize(b.SpecialInstructions)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// warnIfUnavailable checks the caregiver's weekly schedule for the requested
// date. Advisory only: parents can still request outside published hours,
// the caregiver decides via confirm/reject.
func (s *bookingService) warnIfUnavailable(ctx context.Context, booking *model.Booking) {
	if s.availability == nil {
		return
	}

	date, err := time.Parse("2006-01-02", booking.Date)
	if err != nil {
		return
	}
	weekday := strings.ToLower(date.Weekday().String())

	availability, err := s.availability.FindByCaregiver(ctx, booking.CaregiverID)
	if err != nil {
		s.cfg.Log.Warn("Failed to check caregiver availability",
			"caregiver_id", booking.CaregiverID,
			"error", err,
		)
		return
	}
	if availability == nil {
		return
	}

	day := availability.Day(weekday)
	if day != nil && !day.Available {
		s.cfg.Log.Warn("Booking requested on a day marked unavailable",
			"caregiver_id", booking.CaregiverID,
			"date", booking.Date,
			"weekday", weekday,
		)
	}
}

func (s *bookingService) publish(ctx context.Context, booking *model.Booking, fn func(EventPublisher) error) {
	if s.publisher == nil {
		return
	}
	if err := fn(s.publisher); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "id", booking.ID, "error", err)
	}
}
