package planning

import (
	"context"
	"errors"

	"go-crm-admin/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanningRepository interface {
	Create(ctx context.Context, doc *PlanningDocument) error
	FindByID(ctx context.Context, id string) (*PlanningDocument, error)
	Update(ctx context.Context, doc *PlanningDocument) error
	ListByOwner(ctx context.Context, ownerUserID string) ([]PlanningDocument, error)
	ListAll(ctx context.Context) ([]PlanningDocument, error)
	ListByState(ctx context.Context, state State) ([]PlanningDocument, error)
}

type PlanningRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPlanningRepository(mongodb *database.MongodbDB) PlanningRepository {
	return &PlanningRepositoryImpl{
		Collection: mongodb.DB.Collection("planeaciones"),
	}
}

func (r *PlanningRepositoryImpl) Create(ctx context.Context, doc *PlanningDocument) error {
	_, err := r.Collection.InsertOne(ctx, doc)
	return err
}

func (r *PlanningRepositoryImpl) FindByID(ctx context.Context, id string) (*PlanningDocument, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc PlanningDocument
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *PlanningRepositoryImpl) Update(ctx context.Context, doc *PlanningDocument) error {
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlanningRepositoryImpl) ListByOwner(ctx context.Context, ownerUserID string) ([]PlanningDocument, error) {
	return r.list(ctx, bson.M{"owner_user_id": ownerUserID})
}

func (r *PlanningRepositoryImpl) ListAll(ctx context.Context) ([]PlanningDocument, error) {
	return r.list(ctx, bson.M{})
}

func (r *PlanningRepositoryImpl) ListByState(ctx context.Context, state State) ([]PlanningDocument, error) {
	return r.list(ctx, bson.M{"state": state})
}

func (r *PlanningRepositoryImpl) list(ctx context.Context, filter bson.M) ([]PlanningDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "week", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []PlanningDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
