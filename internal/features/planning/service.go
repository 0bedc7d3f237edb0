package planning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlanningService interface {
	Create(ctx context.Context, actor Actor, req CreatePlanningRequest) (*PlanningDocument, error)
	Get(ctx context.Context, actor Actor, id string) (*PlanningDocument, error)
	List(ctx context.Context, actor Actor) ([]PlanningDocument, error)
	AddActivity(ctx context.Context, actor Actor, id string, req ActivityRequest) (*PlanningDocument, error)
	UpdateActivity(ctx context.Context, actor Actor, id, activityID string, req ActivityRequest) (*PlanningDocument, error)
	RemoveActivity(ctx context.Context, actor Actor, id, activityID string) (*PlanningDocument, error)
	AssignEmployee(ctx context.Context, actor Actor, id string, cmd AssignEmployeeCommand) (*PlanningDocument, error)
	RemoveAssignment(ctx context.Context, actor Actor, id, assignmentID string) (*PlanningDocument, error)
	SetAssignmentState(ctx context.Context, actor Actor, id, assignmentID string, state AssignmentState, hours *float64) (*PlanningDocument, error)
	Submit(ctx context.Context, actor Actor, id string) (*PlanningDocument, error)
	Approve(ctx context.Context, actor Actor, id string, req DecisionRequest) (*PlanningDocument, error)
	Reject(ctx context.Context, actor Actor, id string, req DecisionRequest) (*PlanningDocument, error)
	Window() Window
}

type PlanningServiceImpl struct {
	Repo PlanningRepository

	// now is swappable so the Monday–Saturday window can be tested.
	now func() time.Time
}

func NewPlanningService(repo PlanningRepository) PlanningService {
	return &PlanningServiceImpl{
		Repo: repo,
		now:  time.Now,
	}
}

func (s *PlanningServiceImpl) Create(ctx context.Context, actor Actor, req CreatePlanningRequest) (*PlanningDocument, error) {
	if req.Week < 1 || req.Week > 53 {
		return nil, fmt.Errorf("%w: week %d out of range", ErrValidation, req.Week)
	}
	if req.Year < 2000 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrValidation, req.Year)
	}
	if req.PlantID == "" || req.ProjectID == "" {
		return nil, fmt.Errorf("%w: plant and project are required", ErrValidation)
	}

	now := s.now()
	doc := &PlanningDocument{
		ID:          primitive.NewObjectID(),
		Week:        req.Week,
		Year:        req.Year,
		PlantID:     req.PlantID,
		ProjectID:   req.ProjectID,
		OwnerUserID: actor.UserID,
		State:       StateBorrador,
		Activities:  []Activity{},
		Assignments: []Assignment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get applies the viewing rule: an ingeniero sees only their own documents
// and gets a permission error, not a not-found, on anyone else's.
func (s *PlanningServiceImpl) Get(ctx context.Context, actor Actor, id string) (*PlanningDocument, error) {
	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && doc.OwnerUserID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	return doc, nil
}

func (s *PlanningServiceImpl) List(ctx context.Context, actor Actor) ([]PlanningDocument, error) {
	if actor.Admin {
		return s.Repo.ListAll(ctx)
	}
	return s.Repo.ListByOwner(ctx, actor.UserID)
}

// editable loads a document and verifies the actor may mutate it right now.
// The state check happens before any write so an invalid transition never
// reaches the repository.
func (s *PlanningServiceImpl) editable(ctx context.Context, actor Actor, id string) (*PlanningDocument, error) {
	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerUserID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	if !doc.State.Editable() {
		return nil, fmt.Errorf("%w: planeación is %s", ErrStateConflict, doc.State)
	}
	return doc, nil
}

func (s *PlanningServiceImpl) AddActivity(ctx context.Context, actor Actor, id string, req ActivityRequest) (*PlanningDocument, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: activity name is required", ErrValidation)
	}
	if !req.Day.Valid() {
		return nil, fmt.Errorf("%w: unknown day %q", ErrValidation, req.Day)
	}

	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	doc.Activities = append(doc.Activities, Activity{
		ID:    primitive.NewObjectID().Hex(),
		Code:  req.Code,
		Name:  req.Name,
		Day:   req.Day,
		Notes: req.Notes,
	})

	return s.save(ctx, doc)
}

func (s *PlanningServiceImpl) UpdateActivity(ctx context.Context, actor Actor, id, activityID string, req ActivityRequest) (*PlanningDocument, error) {
	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	idx := doc.activityIndex(activityID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: activity %s", ErrNotFound, activityID)
	}

	activity := &doc.Activities[idx]
	if req.Code != "" {
		activity.Code = req.Code
	}
	if req.Name != "" {
		activity.Name = req.Name
	}
	if req.Notes != "" {
		activity.Notes = req.Notes
	}
	if req.Day != "" {
		if !req.Day.Valid() {
			return nil, fmt.Errorf("%w: unknown day %q", ErrValidation, req.Day)
		}
		activity.Day = req.Day
		// Assignments follow their activity's day.
		for i := range doc.Assignments {
			if doc.Assignments[i].ActivityID == activityID {
				doc.Assignments[i].Day = req.Day
			}
		}
	}

	return s.save(ctx, doc)
}

func (s *PlanningServiceImpl) RemoveActivity(ctx context.Context, actor Actor, id, activityID string) (*PlanningDocument, error) {
	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	idx := doc.activityIndex(activityID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: activity %s", ErrNotFound, activityID)
	}

	doc.Activities = append(doc.Activities[:idx], doc.Activities[idx+1:]...)

	// Orphaned assignments go with the activity.
	kept := doc.Assignments[:0]
	for _, a := range doc.Assignments {
		if a.ActivityID != activityID {
			kept = append(kept, a)
		}
	}
	doc.Assignments = kept

	return s.save(ctx, doc)
}

// AssignEmployee handles the drop gesture as an explicit command. The
// assignment's day is always the target activity's day, never the one the
// client claims.
func (s *PlanningServiceImpl) AssignEmployee(ctx context.Context, actor Actor, id string, cmd AssignEmployeeCommand) (*PlanningDocument, error) {
	if cmd.EmployeeID == "" || cmd.ActivityID == "" {
		return nil, fmt.Errorf("%w: employee and activity are required", ErrValidation)
	}

	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	idx := doc.activityIndex(cmd.ActivityID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: activity %s", ErrNotFound, cmd.ActivityID)
	}
	activity := doc.Activities[idx]

	for _, a := range doc.Assignments {
		if a.ActivityID == cmd.ActivityID && a.EmployeeID == cmd.EmployeeID && a.State != AssignmentCancelled {
			return nil, fmt.Errorf("%w: employee already assigned to this activity", ErrValidation)
		}
	}

	doc.Assignments = append(doc.Assignments, Assignment{
		ID:           primitive.NewObjectID().Hex(),
		ActivityID:   activity.ID,
		EmployeeID:   cmd.EmployeeID,
		EmployeeName: cmd.EmployeeName,
		Day:          activity.Day,
		State:        AssignmentAssigned,
	})

	return s.save(ctx, doc)
}

func (s *PlanningServiceImpl) RemoveAssignment(ctx context.Context, actor Actor, id, assignmentID string) (*PlanningDocument, error) {
	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	idx := doc.assignmentIndex(assignmentID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
	}

	doc.Assignments = append(doc.Assignments[:idx], doc.Assignments[idx+1:]...)
	return s.save(ctx, doc)
}

func (s *PlanningServiceImpl) SetAssignmentState(ctx context.Context, actor Actor, id, assignmentID string, state AssignmentState, hours *float64) (*PlanningDocument, error) {
	switch state {
	case AssignmentAssigned, AssignmentInProgress, AssignmentCompleted, AssignmentCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown assignment state %q", ErrValidation, state)
	}

	doc, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	idx := doc.assignmentIndex(assignmentID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
	}

	doc.Assignments[idx].State = state
	if hours != nil {
		doc.Assignments[idx].HoursWorked = hours
	}
	return s.save(ctx, doc)
}

// Submit moves borrador -> enviada, gated to the Monday–Saturday window.
func (s *PlanningServiceImpl) Submit(ctx context.Context, actor Actor, id string) (*PlanningDocument, error) {
	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerUserID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	if !doc.State.Editable() {
		return nil, fmt.Errorf("%w: planeación is %s", ErrStateConflict, doc.State)
	}

	now := s.now()
	if w := SubmissionWindow(now); w.State != WindowOpen {
		return nil, fmt.Errorf("%w: window is %s", ErrWindowClosed, w.State)
	}

	doc.State = StateEnviada
	doc.SubmittedAt = &now
	return s.save(ctx, doc)
}

// Approve moves enviada -> aprobada. Terminal: the document locks for good.
func (s *PlanningServiceImpl) Approve(ctx context.Context, actor Actor, id string, req DecisionRequest) (*PlanningDocument, error) {
	if !actor.Admin {
		return nil, ErrPermissionDenied
	}

	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.State != StateEnviada {
		return nil, fmt.Errorf("%w: planeación is %s, expected %s", ErrStateConflict, doc.State, StateEnviada)
	}

	now := s.now()
	doc.State = StateAprobada
	doc.ApprovedAt = &now
	doc.ApproverID = actor.UserID
	doc.ApprovalComments = req.Comments
	return s.save(ctx, doc)
}

// Reject moves enviada -> rechazada and reopens the document for its owner.
// Comments are mandatory; the check runs before any state change.
func (s *PlanningServiceImpl) Reject(ctx context.Context, actor Actor, id string, req DecisionRequest) (*PlanningDocument, error) {
	if !actor.Admin {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.Comments) == "" {
		return nil, fmt.Errorf("%w: rejection comments are required", ErrValidation)
	}

	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.State != StateEnviada {
		return nil, fmt.Errorf("%w: planeación is %s, expected %s", ErrStateConflict, doc.State, StateEnviada)
	}

	now := s.now()
	doc.State = StateRechazada
	doc.RejectedAt = &now
	doc.ApproverID = actor.UserID
	doc.ApprovalComments = req.Comments
	doc.Rejections = append(doc.Rejections, RejectionRecord{
		RejectedAt: now,
		ApproverID: actor.UserID,
		Comments:   req.Comments,
	})
	return s.save(ctx, doc)
}

func (s *PlanningServiceImpl) Window() Window {
	return SubmissionWindow(s.now())
}

func (s *PlanningServiceImpl) save(ctx context.Context, doc *PlanningDocument) (*PlanningDocument, error) {
	doc.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *PlanningDocument) activityIndex(activityID string) int {
	for i, a := range d.Activities {
		if a.ID == activityID {
			return i
		}
	}
	return -1
}

func (d *PlanningDocument) assignmentIndex(assignmentID string) int {
	for i, a := range d.Assignments {
		if a.ID == assignmentID {
			return i
		}
	}
	return -1
}
