package insumo

import (
	"context"

	"go-crm-admin/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InsumoRepository interface {
	Create(ctx context.Context, i *Insumo) error
	ListByProject(ctx context.Context, projectID string, week, year int) ([]Insumo, error)
	DeleteByProjectWeek(ctx context.Context, projectID string, week, year int) error
}

type InsumoRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewInsumoRepository(mongodb *database.MongodbDB) InsumoRepository {
	return &InsumoRepositoryImpl{
		Collection: mongodb.DB.Collection("insumos"),
	}
}

func (r *InsumoRepositoryImpl) Create(ctx context.Context, i *Insumo) error {
	_, err := r.Collection.InsertOne(ctx, i)
	return err
}

func (r *InsumoRepositoryImpl) ListByProject(ctx context.Context, projectID string, week, year int) ([]Insumo, error) {
	filter := bson.M{"project_id": projectID}
	if week > 0 {
		filter["week"] = week
	}
	if year > 0 {
		filter["year"] = year
	}

	cursor, err := r.Collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Insumo
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByProjectWeek clears a (project, week, year) slice before re-import.
func (r *InsumoRepositoryImpl) DeleteByProjectWeek(ctx context.Context, projectID string, week, year int) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{
		"project_id": projectID,
		"week":       week,
		"year":       year,
	})
	return err
}
