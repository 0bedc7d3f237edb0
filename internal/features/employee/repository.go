package employee

import (
	"context"

	"go-crm-admin/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeRepository interface {
	Upsert(ctx context.Context, e *Employee) error
	FindByEmployeeNo(ctx context.Context, employeeNo string) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListByPlant(ctx context.Context, plantID string) ([]Employee, error)
	DeactivateMissing(ctx context.Context, presentNos []string) (int64, error)
}

type EmployeeRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewEmployeeRepository(mongodb *database.MongodbDB) EmployeeRepository {
	return &EmployeeRepositoryImpl{
		Collection: mongodb.DB.Collection("empleados"),
	}
}

func (r *EmployeeRepositoryImpl) Upsert(ctx context.Context, e *Employee) error {
	update := bson.M{
		"$set": bson.M{
			"name":       e.Name,
			"position":   e.Position,
			"plant_id":   e.PlantID,
			"active":     e.Active,
			"synced_at":  e.SyncedAt,
			"updated_at": e.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"employee_no": e.EmployeeNo,
			"created_at":  e.CreatedAt,
		},
	}
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"employee_no": e.EmployeeNo},
		update,
		options.Update().SetUpsert(true))
	return err
}

func (r *EmployeeRepositoryImpl) FindByEmployeeNo(ctx context.Context, employeeNo string) (*Employee, error) {
	var e Employee
	err := r.Collection.FindOne(ctx, bson.M{"employee_no": employeeNo}).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepositoryImpl) List(ctx context.Context) ([]Employee, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *EmployeeRepositoryImpl) ListByPlant(ctx context.Context, plantID string) ([]Employee, error) {
	return r.find(ctx, bson.M{"active": true, "plant_id": plantID})
}

func (r *EmployeeRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Employee, error) {
	cursor, err := r.Collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Employee
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeactivateMissing marks employees absent from the latest HR pull inactive
// instead of deleting them; past assignments keep pointing at a real record.
func (r *EmployeeRepositoryImpl) DeactivateMissing(ctx context.Context, presentNos []string) (int64, error) {
	result, err := r.Collection.UpdateMany(ctx,
		bson.M{"employee_no": bson.M{"$nin": presentNos}, "active": true},
		bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
