package planning

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// State is the lifecycle position of a planeación.
type State string

const (
	StateBorrador  State = "borrador"
	StateEnviada   State = "enviada"
	StateAprobada  State = "aprobada"
	StateRechazada State = "rechazada"
)

// Editable reports whether activities and assignments may still be mutated.
// A rejected document reopens for editing; an approved one never does.
func (s State) Editable() bool {
	return s == StateBorrador || s == StateRechazada
}

// Day is a day of the week as used across activities and assignments.
type Day string

const (
	DayLunes     Day = "lunes"
	DayMartes    Day = "martes"
	DayMiercoles Day = "miercoles"
	DayJueves    Day = "jueves"
	DayViernes   Day = "viernes"
	DaySabado    Day = "sabado"
	DayDomingo   Day = "domingo"
)

var validDays = map[Day]bool{
	DayLunes: true, DayMartes: true, DayMiercoles: true, DayJueves: true,
	DayViernes: true, DaySabado: true, DayDomingo: true,
}

func (d Day) Valid() bool {
	return validDays[d]
}

// AssignmentState tracks an employee assignment through the week.
type AssignmentState string

const (
	AssignmentAssigned   AssignmentState = "assigned"
	AssignmentInProgress AssignmentState = "in_progress"
	AssignmentCompleted  AssignmentState = "completed"
	AssignmentCancelled  AssignmentState = "cancelled"
)

// Activity is one unit of planned work on a given day.
type Activity struct {
	ID    string `bson:"id" json:"id"`
	Code  string `bson:"code" json:"code"`
	Name  string `bson:"name" json:"name"`
	Day   Day    `bson:"day" json:"day"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Assignment places an employee on an activity. Its Day always equals the
// parent activity's Day; the service derives it at write time.
type Assignment struct {
	ID           string          `bson:"id" json:"id"`
	ActivityID   string          `bson:"activity_id" json:"activity_id"`
	EmployeeID   string          `bson:"employee_id" json:"employee_id"`
	EmployeeName string          `bson:"employee_name" json:"employee_name"`
	Day          Day             `bson:"day" json:"day"`
	State        AssignmentState `bson:"state" json:"state"`
	HoursWorked  *float64        `bson:"hours_worked,omitempty" json:"hours_worked,omitempty"`
}

// RejectionRecord keeps the audit trail of a rejection across resubmissions.
type RejectionRecord struct {
	RejectedAt time.Time `bson:"rejected_at" json:"rejected_at"`
	ApproverID string    `bson:"approver_id" json:"approver_id"`
	Comments   string    `bson:"comments" json:"comments"`
}

// PlanningDocument is a weekly planeación: activities plus employee
// assignments for a (week, year, plant, project) tuple, owned by the engineer
// who created it.
type PlanningDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Week             int                `bson:"week" json:"week"`
	Year             int                `bson:"year" json:"year"`
	PlantID          string             `bson:"plant_id" json:"plant_id"`
	ProjectID        string             `bson:"project_id" json:"project_id"`
	OwnerUserID      string             `bson:"owner_user_id" json:"owner_user_id"`
	State            State              `bson:"state" json:"state"`
	Activities       []Activity         `bson:"activities" json:"activities"`
	Assignments      []Assignment       `bson:"assignments" json:"assignments"`
	SubmittedAt      *time.Time         `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time         `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	RejectedAt       *time.Time         `bson:"rejected_at,omitempty" json:"rejected_at,omitempty"`
	ApproverID       string             `bson:"approver_id,omitempty" json:"approver_id,omitempty"`
	ApprovalComments string             `bson:"approval_comments,omitempty" json:"approval_comments,omitempty"`
	Rejections       []RejectionRecord  `bson:"rejections,omitempty" json:"rejections,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// Actor identifies the caller for ownership and approval checks.
type Actor struct {
	UserID string
	Admin  bool
}

// CreatePlanningRequest starts a new borrador.
type CreatePlanningRequest struct {
	Week      int    `json:"week"`
	Year      int    `json:"year"`
	PlantID   string `json:"plant_id"`
	ProjectID string `json:"project_id"`
}

// ActivityRequest adds or updates an activity.
type ActivityRequest struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Day   Day    `json:"day"`
	Notes string `json:"notes"`
}

// AssignEmployeeCommand is the explicit message behind the drag-and-drop
// gesture: employee dropped on a (day, activity) target. The assignment day
// is derived from the target activity, not trusted from the client.
type AssignEmployeeCommand struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ActivityID   string `json:"activity_id"`
	Day          Day    `json:"day"`
}

// DecisionRequest carries an approve/reject decision.
type DecisionRequest struct {
	Comments string `json:"comments"`
}

// Error taxonomy. Controllers map these onto HTTP statuses; services return
// them before any repository write when a transition is invalid.
var (
	ErrNotFound         = errors.New("planeación not found")
	ErrPermissionDenied = errors.New("no permission for this planeación")
	ErrStateConflict    = errors.New("operation not valid in the current state")
	ErrValidation       = errors.New("validation failed")
	ErrWindowClosed     = errors.New("submission window is closed")
)
