package repository

import (
	"context"
	"fmt"

	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *model.Participant) error
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
	// SetPaymentStatus and SetConfirmationStatus report whether a participant matched.
	SetPaymentStatus(ctx context.Context, id bson.ObjectID, paid bool) (bool, error)
	SetConfirmationStatus(ctx context.Context, id bson.ObjectID, confirmed bool) (bool, error)
	ListView(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error)
}

type mongoParticipantRepository struct {
	coll *mongo.Collection
}

func NewMongoParticipantRepository(db *mongo.Database) ParticipantRepository {
	return &mongoParticipantRepository{coll: db.Collection(database.ParticipantsCollection)}
}

func (r *mongoParticipantRepository) Create(ctx context.Context, p *model.Participant) error {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("mongoParticipantRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoParticipantRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("mongoParticipantRepository.Delete: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoParticipantRepository) setFlag(ctx context.Context, id bson.ObjectID, field string, value bool) (bool, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: field, Value: value}}}}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoParticipantRepository) SetPaymentStatus(ctx context.Context, id bson.ObjectID, paid bool) (bool, error) {
	matched, err := r.setFlag(ctx, id, "paymentStatus", paid)
	if err != nil {
		return false, fmt.Errorf("mongoParticipantRepository.SetPaymentStatus: %w", err)
	}
	return matched, nil
}

func (r *mongoParticipantRepository) SetConfirmationStatus(ctx context.Context, id bson.ObjectID, confirmed bool) (bool, error) {
	matched, err := r.setFlag(ctx, id, "confirmationStatus", confirmed)
	if err != nil {
		return false, fmt.Errorf("mongoParticipantRepository.SetConfirmationStatus: %w", err)
	}
	return matched, nil
}

func (r *mongoParticipantRepository) ListView(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error) {
	cursor, err := r.coll.Aggregate(ctx, ParticipantViewPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("mongoParticipantRepository.ListView aggregate: %w", err)
	}
	var results []facetResult[model.ParticipantView]
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("mongoParticipantRepository.ListView decode: %w", err)
	}
	return toPage(results), nil
}
