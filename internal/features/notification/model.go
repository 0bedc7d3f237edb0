package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an area-scoped notice shown in the page shell. Link doubles
// as the dedup key: the sweeper never writes two notices with the same link.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Area      string             `bson:"area" json:"area"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Link      string             `bson:"link" json:"link"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Rule pairs a Tengo boolean expression with the notification to emit when a
// planeación matches it.
type Rule struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Area       string             `bson:"area" json:"area"`
	Expression string             `bson:"expression" json:"expression"`
	Title      string             `bson:"title" json:"title"`
	Message    string             `bson:"message" json:"message"`
	Active     bool               `bson:"active" json:"active"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

type CreateNotificationRequest struct {
	Area    string `json:"area"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

type CreateRuleRequest struct {
	Name       string `json:"name"`
	Area       string `json:"area"`
	Expression string `json:"expression"`
	Title      string `json:"title"`
	Message    string `json:"message"`
}
