package service

import (
	"context"
	"math"
	"sync"

	"momtech/internal/reviews/repository"
	"momtech/internal/reviews/validator"
	"momtech/pkg/config"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/model"
	"momtech/pkg/sanitizer"

	"github.com/montanaflynn/stats"
)

type ReviewService interface {
	Submit(ctx context.Context, review *model.Review) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Review, int64, error)
	Stats(ctx context.Context) (*model.ReviewStats, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	validator *validator.ReviewValidator
	cfg       *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	validator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *reviewService) Submit(ctx context.Context, review *model.Review) error {
	s.sanitize(review)

	if err := s.validator.Validate(review); err != nil {
		s.cfg.Log.Warn("Review validation failed", "error", err)
		return apperrors.Validation("Review validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to create review", "error", err)
		return apperrors.Internal("Failed to create review", err)
	}

	s.cfg.Log.Info("Review submitted", "id", review.ID, "rating", review.Rating)
	return nil
}

func (s *reviewService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Review, int64, error) {
	var count int64
	var reviews []*model.Review
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reviews", "error", errCount)
			errCount = apperrors.Internal("Failed to count reviews", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reviews, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reviews", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reviews", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reviews, count, nil
}

// Stats aggregates the whole feed on every call. The feed is small enough
// that precomputing is not worth the write-path complexity.
func (s *reviewService) Stats(ctx context.Context) (*model.ReviewStats, error) {
	reviews, err := s.repo.FindAllForStats(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load reviews for stats", "error", err)
		return nil, apperrors.Internal("Failed to compute review stats", err)
	}

	result := &model.ReviewStats{
		TotalReviews: int64(len(reviews)),
	}
	if len(reviews) == 0 {
		return result, nil
	}

	ratings := make([]float64, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, float64(review.Rating))
		if review.Rating >= 1 && review.Rating <= 5 {
			result.RatingDistribution[review.Rating-1]++
		}
	}

	mean, err := stats.Mean(ratings)
	if err != nil {
		return nil, apperrors.Internal("Failed to compute review stats", err)
	}
	result.AverageRating = math.Round(mean*10) / 10

	result.MostCommonAnswers = model.PromptAnswers{
		Question1: mostCommon(reviews, func(r *model.Review) string { return r.Question1 }),
		Question2: mostCommon(reviews, func(r *model.Review) string { return r.Question2 }),
		Question3: mostCommon(reviews, func(r *model.Review) string { return r.Question3 }),
	}

	return result, nil
}

// mostCommon returns the most frequent non-empty answer; ties go to the
// answer seen first in feed order.
func mostCommon(reviews []*model.Review, answer func(*model.Review) string) string {
	counts := make(map[string]int, len(reviews))
	var best string
	var bestCount int

	for _, review := range reviews {
		a := answer(review)
		if a == "" {
			continue
		}
		counts[a]++
		if counts[a] > bestCount {
			best = a
			bestCount = counts[a]
		}
	}

	return best
}

func (s *reviewService) sanitize(review *model.Review) {
	review.ReviewerName = sanitizer.NormalizeName(review.ReviewerName)
	review.Question1 = sanitizer.TrimAndNormalize(review.Question1)
	review.Question2 = sanitizer.TrimAndNormalize(review.Question2)
	review.Question3 = sanitizer.TrimAndNormalize(review.Question3)
	review.ReviewText = sanitizer.TrimAndNormalize(review.ReviewText)
}
