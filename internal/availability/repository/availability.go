package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityerrors "momtech/internal/availability/errors"
	"momtech/pkg/config"
	"momtech/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Availability"
)

type mongoAvailabilityRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type AvailabilityRepository interface {
	FindByCaregiver(ctx context.Context, caregiverID string) (*model.Availability, error)
	Upsert(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error)
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAvailabilityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoAvailabilityRepository) FindByCaregiver(ctx context.Context, caregiverID string) (*model.Availability, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var availability model.Availability
	err := r.collection.FindOne(ctx, bson.M{"caregiver_id": caregiverID}).Decode(&availability)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availabilityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}

	return &availability, nil
}

// Upsert applies the provided weekdays in a single atomic write. Days absent
// from the update keep their stored value.
func (r *mongoAvailabilityRepository) Upsert(ctx context.Context, caregiverID string, update *model.AvailabilityUpdate) (*model.Availability, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	set := bson.M{
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	for day, window := range update.Days() {
		set[day] = window
	}

	// On insert the equality filter seeds caregiver_id on the new document.
	filter := bson.M{"caregiver_id": caregiverID}
	change := bson.M{"$set": set}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var availability model.Availability
	err := r.collection.FindOneAndUpdate(ctx, filter, change, opts).Decode(&availability)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert availability: %w", err)
	}

	return &availability, nil
}
