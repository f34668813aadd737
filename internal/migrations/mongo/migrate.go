package mongo

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"momtech/internal/migrations/mongo/validators"
	"momtech/pkg/config"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "caregiver_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "requester_id", Value: 1},
			{Key: "date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
		}},
	}

	AvailabilityIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "caregiver_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ReviewsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
	}

	PaymentTransactionsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "method", Value: 1}}},
	}

	PaymentPreferencesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
)

func databaseName() string {
	if name := os.Getenv(config.EnvMongoDatabaseName); name != "" {
		return name
	}
	return config.DefaultMongoDatabaseName
}

func RunMigration(ctx context.Context, client *mongo.Client) error {
	dbName := databaseName()
	db := client.Database(dbName)
	fmt.Printf("🚀 Running MomTech Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Availability": {
			Indexes:   AvailabilityIndexes,
			Validator: validators.AvailabilityValidator,
		},
		"Reviews": {
			Indexes:   ReviewsIndexes,
			Validator: validators.ReviewValidator,
		},
		"PaymentTransactions": {
			Indexes:   PaymentTransactionsIndexes,
			Validator: validators.PaymentTransactionValidator,
		},
		"PaymentPreferences": {
			Indexes:   PaymentPreferencesIndexes,
			Validator: validators.PaymentPreferenceValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
