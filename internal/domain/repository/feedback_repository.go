package repository

import (
	"context"
	"fmt"

	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f *model.Feedback) error
	List(ctx context.Context) ([]model.Feedback, error)
	ListByCamp(ctx context.Context, campID bson.ObjectID) ([]model.Feedback, error)
}

type mongoFeedbackRepository struct {
	coll *mongo.Collection
}

func NewMongoFeedbackRepository(db *mongo.Database) FeedbackRepository {
	return &mongoFeedbackRepository{coll: db.Collection(database.FeedbacksCollection)}
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	res, err := r.coll.InsertOne(ctx, f)
	if err != nil {
		return fmt.Errorf("mongoFeedbackRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		f.ID = id
	}
	return nil
}

func (r *mongoFeedbackRepository) find(ctx context.Context, filter bson.D) ([]model.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	feedbacks := []model.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *mongoFeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	feedbacks, err := r.find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongoFeedbackRepository.List: %w", err)
	}
	return feedbacks, nil
}

func (r *mongoFeedbackRepository) ListByCamp(ctx context.Context, campID bson.ObjectID) ([]model.Feedback, error) {
	feedbacks, err := r.find(ctx, bson.D{{Key: "campId", Value: campID}})
	if err != nil {
		return nil, fmt.Errorf("mongoFeedbackRepository.ListByCamp: %w", err)
	}
	return feedbacks, nil
}
