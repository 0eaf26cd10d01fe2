package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CampRepository interface {
	Create(ctx context.Context, camp *model.Camp) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Camp, error)
	FindBySlug(ctx context.Context, slug string) (*model.Camp, error)
	// List returns one page plus the estimated size of the whole collection,
	// not the number of documents matching the search.
	List(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error)
	ListBefore(ctx context.Context, day string, limit int) ([]model.Camp, error)
	Update(ctx context.Context, id bson.ObjectID, update model.CampUpdate) error
	Delete(ctx context.Context, id bson.ObjectID) error
	// AddParticipants applies delta to participantCount and reports whether a
	// camp matched.
	AddParticipants(ctx context.Context, id bson.ObjectID, delta int) (bool, error)
}

type mongoCampRepository struct {
	coll *mongo.Collection
}

func NewMongoCampRepository(db *mongo.Database) CampRepository {
	return &mongoCampRepository{coll: db.Collection(database.CampsCollection)}
}

func (r *mongoCampRepository) Create(ctx context.Context, camp *model.Camp) error {
	res, err := r.coll.InsertOne(ctx, camp)
	if err != nil {
		return fmt.Errorf("mongoCampRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		camp.ID = id
	}
	return nil
}

func (r *mongoCampRepository) findOne(ctx context.Context, filter bson.D) (*model.Camp, error) {
	camp := &model.Camp{}
	if err := r.coll.FindOne(ctx, filter).Decode(camp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return camp, nil
}

func (r *mongoCampRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Camp, error) {
	camp, err := r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("mongoCampRepository.FindByID: %w", err)
	}
	return camp, err
}

func (r *mongoCampRepository) FindBySlug(ctx context.Context, slug string) (*model.Camp, error) {
	camp, err := r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("mongoCampRepository.FindBySlug: %w", err)
	}
	return camp, err
}

func (r *mongoCampRepository) List(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error) {
	var (
		cursor *mongo.Cursor
		err    error
	)
	if q.Home {
		cursor, err = r.coll.Aggregate(ctx, HomeCampsPipeline())
	} else {
		skip, limit := CampPageBounds(q.Page, q.Available)
		opts := options.Find().
			SetSort(CampSortSpec(q.Sort)).
			SetSkip(skip).
			SetLimit(limit)
		cursor, err = r.coll.Find(ctx, CampSearchFilter(q.Search), opts)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("mongoCampRepository.List query: %w", err)
	}

	camps := []model.Camp{}
	if err := cursor.All(ctx, &camps); err != nil {
		return nil, 0, fmt.Errorf("mongoCampRepository.List decode: %w", err)
	}

	total, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("mongoCampRepository.List count: %w", err)
	}
	return camps, total, nil
}

func (r *mongoCampRepository) ListBefore(ctx context.Context, day string, limit int) ([]model.Camp, error) {
	opts := options.Find().SetSort(RecentCampsSort()).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, RecentCampsFilter(day), opts)
	if err != nil {
		return nil, fmt.Errorf("mongoCampRepository.ListBefore query: %w", err)
	}
	camps := []model.Camp{}
	if err := cursor.All(ctx, &camps); err != nil {
		return nil, fmt.Errorf("mongoCampRepository.ListBefore decode: %w", err)
	}
	return camps, nil
}

func (r *mongoCampRepository) Update(ctx context.Context, id bson.ObjectID, update model.CampUpdate) error {
	set := campUpdateDoc(update)
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("mongoCampRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("camp %s: %w", id.Hex(), common.ErrNotFound)
	}
	return nil
}

// Delete removes the camp only; its participants are left in place.
func (r *mongoCampRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("mongoCampRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("camp %s: %w", id.Hex(), common.ErrNotFound)
	}
	return nil
}

func (r *mongoCampRepository) AddParticipants(ctx context.Context, id bson.ObjectID, delta int) (bool, error) {
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "participantCount", Value: delta}}}}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return false, fmt.Errorf("mongoCampRepository.AddParticipants: %w", err)
	}
	return res.MatchedCount > 0, nil
}
