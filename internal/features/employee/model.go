package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a nóminas record assignable to planning activities. EmployeeNo
// is the HR system's key and stays stable across syncs.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeNo string             `bson:"employee_no" json:"employee_no"`
	Name       string             `bson:"name" json:"name"`
	Position   string             `bson:"position" json:"position"`
	PlantID    string             `bson:"plant_id" json:"plant_id"`
	Active     bool               `bson:"active" json:"active"`
	SyncedAt   time.Time          `bson:"synced_at" json:"synced_at"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
