package repository

import (
	"context"
	"fmt"

	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// AnalyticsRepository answers the dashboard aggregates. Each method is an
// independent read and is safe to call concurrently.
type AnalyticsRepository interface {
	TotalParticipants(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	TotalCamps(ctx context.Context) (int, error)
	FeedbackCounts(ctx context.Context) ([]model.CampFeedbackCount, error)
}

type mongoAnalyticsRepository struct {
	camps     *mongo.Collection
	payments  *mongo.Collection
	feedbacks *mongo.Collection
}

func NewMongoAnalyticsRepository(db *mongo.Database) AnalyticsRepository {
	return &mongoAnalyticsRepository{
		camps:     db.Collection(database.CampsCollection),
		payments:  db.Collection(database.PaymentsCollection),
		feedbacks: db.Collection(database.FeedbacksCollection),
	}
}

// SumPipeline totals field across a whole collection into {total: n}.
func SumPipeline(field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}
}

// FeedbackCountPipeline counts feedbacks per camp, most reviewed first.
func FeedbackCountPipeline() mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$campId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	p = append(p, LookupOne(database.CampsCollection, "_id", "_id", "camp")...)
	p = append(p,
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "count", Value: 1},
			{Key: "campName", Value: "$camp.campName"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	)
	return p
}

type sumResult struct {
	Total float64 `bson:"total"`
}

// firstTotal reads the single $group row; an empty collection yields no row.
func firstTotal(rows []sumResult) float64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Total
}

func (r *mongoAnalyticsRepository) sum(ctx context.Context, coll *mongo.Collection, field string) (float64, error) {
	cursor, err := coll.Aggregate(ctx, SumPipeline(field))
	if err != nil {
		return 0, err
	}
	var rows []sumResult
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	return firstTotal(rows), nil
}

func (r *mongoAnalyticsRepository) TotalParticipants(ctx context.Context) (int, error) {
	total, err := r.sum(ctx, r.camps, "participantCount")
	if err != nil {
		return 0, fmt.Errorf("mongoAnalyticsRepository.TotalParticipants: %w", err)
	}
	return int(total), nil
}

func (r *mongoAnalyticsRepository) TotalRevenue(ctx context.Context) (float64, error) {
	total, err := r.sum(ctx, r.payments, "campFees")
	if err != nil {
		return 0, fmt.Errorf("mongoAnalyticsRepository.TotalRevenue: %w", err)
	}
	return total, nil
}

func (r *mongoAnalyticsRepository) TotalCamps(ctx context.Context) (int, error) {
	n, err := r.camps.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongoAnalyticsRepository.TotalCamps: %w", err)
	}
	return int(n), nil
}

func (r *mongoAnalyticsRepository) FeedbackCounts(ctx context.Context) ([]model.CampFeedbackCount, error) {
	cursor, err := r.feedbacks.Aggregate(ctx, FeedbackCountPipeline())
	if err != nil {
		return nil, fmt.Errorf("mongoAnalyticsRepository.FeedbackCounts aggregate: %w", err)
	}
	counts := []model.CampFeedbackCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("mongoAnalyticsRepository.FeedbackCounts decode: %w", err)
	}
	return counts, nil
}
