package database

import (
	"context"
	"fmt"
	"log"

	"medicamp_api/internal/platform/config"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection        = "users"
	CampsCollection        = "camps"
	ParticipantsCollection = "participants"
	PaymentsCollection     = "payments"
	FeedbacksCollection    = "feedbacks"
)

// Connect opens a pooled client and verifies it with a ping. Every operation
// issued through the client is bounded by cfg.MongoTimeout.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetTimeout(cfg.MongoTimeout).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}

	log.Printf("Successfully connected to MongoDB database %q", cfg.MongoDB)
	return client, client.Database(cfg.MongoDB), nil
}

func Close(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("ERROR: MongoDB disconnect: %v", err)
		return
	}
	log.Println("MongoDB connection closed.")
}

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

var indexes = []indexSpec{
	{collection: UsersCollection, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	{collection: PaymentsCollection, keys: bson.D{{Key: "transactionId", Value: 1}}, unique: true},
	{collection: PaymentsCollection, keys: bson.D{{Key: "email", Value: 1}}},
	{collection: ParticipantsCollection, keys: bson.D{{Key: "participantEmail", Value: 1}}},
	{collection: ParticipantsCollection, keys: bson.D{{Key: "campId", Value: 1}}},
	{collection: FeedbacksCollection, keys: bson.D{{Key: "campId", Value: 1}}},
}

// EnsureIndexes creates the indexes the store relies on. Creating an index
// that already exists is a no-op in MongoDB.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range indexes {
		model := mongo.IndexModel{Keys: spec.keys}
		if spec.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("database: create index on %s: %w", spec.collection, err)
		}
	}
	return nil
}
