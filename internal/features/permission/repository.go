package permission

import (
	"context"
	"errors"

	"go-crm-admin/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PermissionRepository interface {
	Create(ctx context.Context, perm *Permission) error
	FindByID(ctx context.Context, id int) (*Permission, error)
	List(ctx context.Context) ([]Permission, error)
	ListChildren(ctx context.Context, parentID int) ([]Permission, error)
	Update(ctx context.Context, id int, perm *Permission) error
	Delete(ctx context.Context, id int) error
	NextID(ctx context.Context) (int, error)
}

type PermissionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPermissionRepository(mongodb *database.MongodbDB) PermissionRepository {
	return &PermissionRepositoryImpl{
		Collection: mongodb.DB.Collection("permisos"),
	}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, perm *Permission) error {
	_, err := r.Collection.InsertOne(ctx, perm)
	return err
}

func (r *PermissionRepositoryImpl) FindByID(ctx context.Context, id int) (*Permission, error) {
	var perm Permission
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&perm)
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]Permission, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perms []Permission
	if err = cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) ListChildren(ctx context.Context, parentID int) ([]Permission, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"parent_id": parentID}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perms []Permission
	if err = cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) Update(ctx context.Context, id int, perm *Permission) error {
	perm.ID = id
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": id}, perm)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PermissionRepositoryImpl) Delete(ctx context.Context, id int) error {
	// A módulo takes its sub-permisos with it.
	_, err := r.Collection.DeleteMany(ctx, bson.M{"$or": []bson.M{{"_id": id}, {"parent_id": id}}})
	return err
}

func (r *PermissionRepositoryImpl) NextID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"_id": -1})
	var last Permission
	err := r.Collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return last.ID + 1, nil
}
