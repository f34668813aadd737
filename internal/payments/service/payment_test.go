package service

import (
	"context"
	"testing"
	"time"

	"momtech/internal/payments/validator"
	"momtech/pkg/config"
	apperrors "momtech/pkg/errors"
	"momtech/pkg/logger"
	"momtech/pkg/model"
)

type mockPaymentRepository struct {
	createTransactionFunc func(ctx context.Context, transaction *model.PaymentTransaction) error
	findTransactionsFunc  func(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, error)
	countTransactionsFunc func(ctx context.Context) (int64, error)
	createPreferenceFunc  func(ctx context.Context, preference *model.PaymentPreference) error
}

func (m *mockPaymentRepository) CreateTransaction(ctx context.Context, transaction *model.PaymentTransaction) error {
	if m.createTransactionFunc != nil {
		return m.createTransactionFunc(ctx, transaction)
	}
	return nil
}

func (m *mockPaymentRepository) FindTransactions(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, error) {
	if m.findTransactionsFunc != nil {
		return m.findTransactionsFunc(ctx, limit, offset)
	}
	return []*model.PaymentTransaction{}, nil
}

func (m *mockPaymentRepository) CountTransactions(ctx context.Context) (int64, error) {
	if m.countTransactionsFunc != nil {
		return m.countTransactionsFunc(ctx)
	}
	return 0, nil
}

func (m *mockPaymentRepository) CreatePreference(ctx context.Context, preference *model.PaymentPreference) error {
	if m.createPreferenceFunc != nil {
		return m.createPreferenceFunc(ctx, preference)
	}
	return nil
}

func newTestService(t *testing.T, repo *mockPaymentRepository) *paymentService {
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
	return &paymentService{
		repo:      repo,
		validator: validator.NewPaymentValidator(log),
		cfg:       cfg,
	}
}

func TestProcessTransaction_DefaultsStatusAndDate(t *testing.T) {
	var captured *model.PaymentTransaction
	repo := &mockPaymentRepository{
		createTransactionFunc: func(ctx context.Context, transaction *model.PaymentTransaction) error {
			captured = transaction
			return nil
		},
	}
	svc := newTestService(t, repo)

	transaction := &model.PaymentTransaction{
		Amount: 150,
		Method: "  Credit   Card ",
	}

	if err := svc.ProcessTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Status != DefaultTransactionStatus {
		t.Errorf("expected default status %q, got %q", DefaultTransactionStatus, captured.Status)
	}
	if captured.Method != "credit card" {
		t.Errorf("expected normalized method, got %q", captured.Method)
	}
	if captured.Date.IsZero() {
		t.Error("expected date to default to now")
	}
}

func TestProcessTransaction_KeepsExplicitStatus(t *testing.T) {
	var captured *model.PaymentTransaction
	repo := &mockPaymentRepository{
		createTransactionFunc: func(ctx context.Context, transaction *model.PaymentTransaction) error {
			captured = transaction
			return nil
		},
	}
	svc := newTestService(t, repo)

	transaction := &model.PaymentTransaction{
		Amount: 80,
		Method: "paypal",
		Status: "Pending",
	}

	if err := svc.ProcessTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Status != "Pending" {
		t.Errorf("expected explicit status to be kept, got %q", captured.Status)
	}
}

func TestProcessTransaction_RejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(t, &mockPaymentRepository{})

	err := svc.ProcessTransaction(context.Background(), &model.PaymentTransaction{
		Amount: 0,
		Method: "cash",
	})
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 422 {
		t.Errorf("expected status 422, got %d", appErr.StatusCode())
	}
}

func TestSavePreference_NormalizesMethod(t *testing.T) {
	var captured *model.PaymentPreference
	repo := &mockPaymentRepository{
		createPreferenceFunc: func(ctx context.Context, preference *model.PaymentPreference) error {
			captured = preference
			return nil
		},
	}
	svc := newTestService(t, repo)

	preference := &model.PaymentPreference{
		Method: " Bank   Transfer ",
		Rate:   55.5,
	}

	if err := svc.SavePreference(context.Background(), preference); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Method != "bank transfer" {
		t.Errorf("expected normalized method, got %q", captured.Method)
	}
}

func TestSavePreference_RejectsZeroRate(t *testing.T) {
	svc := newTestService(t, &mockPaymentRepository{})

	err := svc.SavePreference(context.Background(), &model.PaymentPreference{Method: "cash", Rate: 0})
	if err == nil {
		t.Fatal("expected validation error for zero rate")
	}
}

func TestGetReports_CountAndFind(t *testing.T) {
	repo := &mockPaymentRepository{
		countTransactionsFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 3, nil
		},
		findTransactionsFunc: func(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.PaymentTransaction{
				{Amount: 100, Method: "cash", Status: "Completed"},
			}, nil
		},
	}
	svc := newTestService(t, repo)

	// Run with -race flag to detect unsynchronized access
	for i := 0; i < 10; i++ {
		transactions, count, err := svc.GetReports(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 3 {
			t.Errorf("iteration %d: expected count 3, got %d", i, count)
		}
		if len(transactions) != 1 {
			t.Errorf("iteration %d: expected 1 transaction, got %d", i, len(transactions))
		}
	}
}
