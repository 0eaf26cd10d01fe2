package repository

import (
	"context"
	"fmt"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	History(ctx context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error)
}

type mongoPaymentRepository struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepository{coll: db.Collection(database.PaymentsCollection)}
}

func (r *mongoPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("transaction %s already recorded: %w", p.TransactionID, common.ErrConflict)
		}
		return fmt.Errorf("mongoPaymentRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoPaymentRepository) History(ctx context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error) {
	cursor, err := r.coll.Aggregate(ctx, PaymentHistoryPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("mongoPaymentRepository.History aggregate: %w", err)
	}
	var results []facetResult[model.PaymentView]
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("mongoPaymentRepository.History decode: %w", err)
	}
	return toPage(results), nil
}
