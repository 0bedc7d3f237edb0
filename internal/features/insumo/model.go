package insumo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Insumo is one material line in the explosión de insumos for a project:
// what the plan consumes, in what quantity, against which week.
type Insumo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID string             `bson:"project_id" json:"project_id"`
	Week      int                `bson:"week" json:"week"`
	Year      int                `bson:"year" json:"year"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	Unit      string             `bson:"unit" json:"unit"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// ImportSummary reports the outcome of one workbook upload.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
