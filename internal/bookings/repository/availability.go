package repository

import (
	"context"
	"errors"
	"fmt"

	"momtech/pkg/config"
	"momtech/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const AvailabilityCollectionName = "Availability"

// AvailabilityReader gives the bookings service read access to caregiver
// weekly schedules. Writes stay with the availability service.
type AvailabilityReader interface {
	FindByCaregiver(ctx context.Context, caregiverID string) (*model.Availability, error)
}

type mongoAvailabilityReader struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAvailabilityReader(cfg *config.Config) AvailabilityReader {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityReader{
		cfg:        cfg,
		collection: db.Collection(AvailabilityCollectionName),
	}
}

func (r *mongoAvailabilityReader) FindByCaregiver(ctx context.Context, caregiverID string) (*model.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var availability model.Availability
	err := r.collection.FindOne(ctx, bson.M{"caregiver_id": caregiverID}).Decode(&availability)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}

	return &availability, nil
}
