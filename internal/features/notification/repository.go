package notification

import (
	"context"

	"go-crm-admin/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByArea(ctx context.Context, area string) ([]Notification, error)
	CountUnread(ctx context.Context, area string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	ExistsByLink(ctx context.Context, link string) (bool, error)

	CreateRule(ctx context.Context, r *Rule) error
	ListActiveRules(ctx context.Context) ([]Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	DeleteRule(ctx context.Context, id string) error
}

type NotificationRepositoryImpl struct {
	Collection *mongo.Collection
	Rules      *mongo.Collection
}

func NewNotificationRepository(mongodb *database.MongodbDB) NotificationRepository {
	return &NotificationRepositoryImpl{
		Collection: mongodb.DB.Collection("notificaciones"),
		Rules:      mongodb.DB.Collection("reglas_notificacion"),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *Notification) error {
	_, err := r.Collection.InsertOne(ctx, n)
	return err
}

func (r *NotificationRepositoryImpl) ListByArea(ctx context.Context, area string) ([]Notification, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"area": area},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Notification
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, area string) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"area": area, "read": false})
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *NotificationRepositoryImpl) ExistsByLink(ctx context.Context, link string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"link": link})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *NotificationRepositoryImpl) CreateRule(ctx context.Context, rule *Rule) error {
	_, err := r.Rules.InsertOne(ctx, rule)
	return err
}

func (r *NotificationRepositoryImpl) ListActiveRules(ctx context.Context) ([]Rule, error) {
	return r.findRules(ctx, bson.M{"active": true})
}

func (r *NotificationRepositoryImpl) ListRules(ctx context.Context) ([]Rule, error) {
	return r.findRules(ctx, bson.M{})
}

func (r *NotificationRepositoryImpl) findRules(ctx context.Context, filter bson.M) ([]Rule, error) {
	cursor, err := r.Rules.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Rule
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepositoryImpl) DeleteRule(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Rules.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
