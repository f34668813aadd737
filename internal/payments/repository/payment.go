package repository

import (
	"context"
	"fmt"
	"time"

	"momtech/pkg/config"
	"momtech/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TransactionsCollectionName = "PaymentTransactions"
	PreferencesCollectionName  = "PaymentPreferences"
)

type mongoPaymentRepository struct {
	cfg          *config.Config
	db           *mongo.Database
	transactions *mongo.Collection
	preferences  *mongo.Collection
}

type PaymentRepository interface {
	CreateTransaction(ctx context.Context, transaction *model.PaymentTransaction) error
	FindTransactions(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, error)
	CountTransactions(ctx context.Context) (int64, error)
	CreatePreference(ctx context.Context, preference *model.PaymentPreference) error
}

func NewMongoPaymentRepository(cfg *config.Config) PaymentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPaymentRepository{
		cfg:          cfg,
		db:           db,
		transactions: db.Collection(TransactionsCollectionName),
		preferences:  db.Collection(PreferencesCollectionName),
	}
}

func (r *mongoPaymentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPaymentRepository) CreateTransaction(ctx context.Context, transaction *model.PaymentTransaction) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.transactions.InsertOne(ctx, transaction)
	if err != nil {
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		transaction.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPaymentRepository) FindTransactions(ctx context.Context, limit int, offset int64) ([]*model.PaymentTransaction, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.transactions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []*model.PaymentTransaction
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode payment transactions: %w", err)
	}

	return transactions, nil
}

func (r *mongoPaymentRepository) CountTransactions(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.transactions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count payment transactions: %w", err)
	}

	return count, nil
}

func (r *mongoPaymentRepository) CreatePreference(ctx context.Context, preference *model.PaymentPreference) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	preference.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.preferences.InsertOne(ctx, preference)
	if err != nil {
		return fmt.Errorf("failed to create payment preference: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		preference.ID = oid.Hex()
	}
	return nil
}
