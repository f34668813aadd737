package service

import (
	"context"
	"sync"
	"time"

	"momtech/internal/payments/repository"
	"momtech/internal/payments/validator"
	"momtech/pkg/config"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/model"
	"momtech/pkg/sanitizer"
)

// DefaultTransactionStatus is recorded when the caller omits one. The ledger
// has no gateway behind it, entries describe payments that already happened.
const DefaultTransactionStatus = "Completed"

type PaymentService interface {
	ProcessTransaction(ctx context.Context, transaction *model.PaymentTransaction) error
	SavePreference(ctx context.Context, preference *model.PaymentPreference) error
	GetReports(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, int64, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	validator *validator.PaymentValidator
	cfg       *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	validator *validator.PaymentValidator,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *paymentService) ProcessTransaction(ctx context.Context, transaction *model.PaymentTransaction) error {
	transaction.Method = sanitizer.NormalizeLabel(transaction.Method)
	transaction.Status = sanitizer.TrimAndNormalize(transaction.Status)
	if transaction.Status == "" {
		transaction.Status = DefaultTransactionStatus
	}
	if transaction.Date.IsZero() {
		transaction.Date = time.Now().UTC().Truncate(time.Millisecond)
	}

	if err := s.validator.ValidateTransaction(transaction); err != nil {
		s.cfg.Log.Warn("Payment transaction validation failed", "error", err)
		return apperrors.Validation("Payment transaction validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		s.cfg.Log.Error("Failed to record payment transaction", "error", err)
		return apperrors.Internal("Failed to record payment transaction", err)
	}

	s.cfg.Log.Info("Payment transaction recorded",
		"id", transaction.ID,
		"amount", transaction.Amount,
		"method", transaction.Method,
	)
	return nil
}

func (s *paymentService) SavePreference(ctx context.Context, preference *model.PaymentPreference) error {
	preference.Method = sanitizer.NormalizeLabel(preference.Method)

	if err := s.validator.ValidatePreference(preference); err != nil {
		s.cfg.Log.Warn("Payment preference validation failed", "error", err)
		return apperrors.Validation("Payment preference validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.CreatePreference(ctx, preference); err != nil {
		s.cfg.Log.Error("Failed to save payment preference", "error", err)
		return apperrors.Internal("Failed to save payment preference", err)
	}

	s.cfg.Log.Info("Payment preference saved",
		"id", preference.ID,
		"method", preference.Method,
		"rate", preference.Rate,
	)
	return nil
}

func (s *paymentService) GetReports(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, int64, error) {
	var count int64
	var transactions []*model.PaymentTransaction
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountTransactions(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count payment transactions", "error", errCount)
			errCount = apperrors.Internal("Failed to count payment transactions", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		transactions, errFind = s.repo.FindTransactions(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list payment transactions", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve payment transactions", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return transactions, count, nil
}
