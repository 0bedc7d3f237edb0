package planning

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRepo is an in-memory PlanningRepository for service tests.
type fakeRepo struct {
	docs map[string]*PlanningDocument
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[string]*PlanningDocument)}
}

func clonePlanning(d *PlanningDocument) *PlanningDocument {
	c := *d
	c.Activities = append([]Activity(nil), d.Activities...)
	c.Assignments = append([]Assignment(nil), d.Assignments...)
	c.Rejections = append([]RejectionRecord(nil), d.Rejections...)
	return &c
}

func (r *fakeRepo) Create(_ context.Context, doc *PlanningDocument) error {
	r.docs[doc.ID.Hex()] = clonePlanning(doc)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*PlanningDocument, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePlanning(doc), nil
}

func (r *fakeRepo) Update(_ context.Context, doc *PlanningDocument) error {
	if _, ok := r.docs[doc.ID.Hex()]; !ok {
		return ErrNotFound
	}
	r.docs[doc.ID.Hex()] = clonePlanning(doc)
	return nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, owner string) ([]PlanningDocument, error) {
	var out []PlanningDocument
	for _, d := range r.docs {
		if d.OwnerUserID == owner {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]PlanningDocument, error) {
	var out []PlanningDocument
	for _, d := range r.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeRepo) ListByState(_ context.Context, state State) ([]PlanningDocument, error) {
	var out []PlanningDocument
	for _, d := range r.docs {
		if d.State == state {
			out = append(out, *d)
		}
	}
	return out, nil
}

var (
	engineer      = Actor{UserID: "ing-1"}
	otherEngineer = Actor{UserID: "ing-2"}
	admin         = Actor{UserID: "adm-1", Admin: true}

	// Wednesday, well inside the Monday–Saturday window.
	midweek = time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	sunday  = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
)

func newService(repo PlanningRepository, now time.Time) *PlanningServiceImpl {
	return &PlanningServiceImpl{Repo: repo, now: func() time.Time { return now }}
}

func createDoc(t *testing.T, s *PlanningServiceImpl) *PlanningDocument {
	t.Helper()
	doc, err := s.Create(context.Background(), engineer, CreatePlanningRequest{
		Week: 2, Year: 2025, PlantID: "planta-1", ProjectID: "proy-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return doc
}

func TestCreate_StartsAsBorrador(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)

	if doc.State != StateBorrador {
		t.Errorf("state = %s, want %s", doc.State, StateBorrador)
	}
	if doc.OwnerUserID != engineer.UserID {
		t.Errorf("owner = %s, want %s", doc.OwnerUserID, engineer.UserID)
	}
}

func TestCreate_Validation(t *testing.T) {
	s := newService(newFakeRepo(), midweek)

	tests := []CreatePlanningRequest{
		{Week: 0, Year: 2025, PlantID: "p", ProjectID: "p"},
		{Week: 54, Year: 2025, PlantID: "p", ProjectID: "p"},
		{Week: 2, Year: 1990, PlantID: "p", ProjectID: "p"},
		{Week: 2, Year: 2025, PlantID: "", ProjectID: "p"},
	}
	for _, req := range tests {
		if _, err := s.Create(context.Background(), engineer, req); !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%+v) err = %v, want ErrValidation", req, err)
		}
	}
}

func TestGet_ViewingRule(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)

	if _, err := s.Get(context.Background(), otherEngineer, doc.ID.Hex()); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("other engineer err = %v, want ErrPermissionDenied", err)
	}
	if _, err := s.Get(context.Background(), admin, doc.ID.Hex()); err != nil {
		t.Errorf("admin err = %v, want nil", err)
	}
	if _, err := s.Get(context.Background(), engineer, "000000000000000000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing doc err = %v, want ErrNotFound", err)
	}
}

func TestAssignEmployee_DayFollowsActivity(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)

	doc, err := s.AddActivity(context.Background(), engineer, doc.ID.Hex(), ActivityRequest{
		Code: "A-01", Name: "Montaje", Day: DayMartes,
	})
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}
	activity := doc.Activities[0]

	// The client claims viernes; the target activity lives on martes.
	doc, err = s.AssignEmployee(context.Background(), engineer, doc.ID.Hex(), AssignEmployeeCommand{
		EmployeeID: "emp-7", EmployeeName: "Luis", ActivityID: activity.ID, Day: DayViernes,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if len(doc.Assignments) != 1 {
		t.Fatalf("assignments = %d, want 1", len(doc.Assignments))
	}
	got := doc.Assignments[0]
	if got.Day != DayMartes {
		t.Errorf("assignment day = %s, want %s (the activity's)", got.Day, DayMartes)
	}
	if got.State != AssignmentAssigned {
		t.Errorf("assignment state = %s, want %s", got.State, AssignmentAssigned)
	}

	// Same employee on the same activity again is rejected.
	if _, err := s.AssignEmployee(context.Background(), engineer, doc.ID.Hex(), AssignEmployeeCommand{
		EmployeeID: "emp-7", ActivityID: activity.ID,
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate assign err = %v, want ErrValidation", err)
	}
}

func TestSubmit_WindowGate(t *testing.T) {
	repo := newFakeRepo()

	s := newService(repo, sunday)
	doc := createDoc(t, s)
	if _, err := s.Submit(context.Background(), engineer, doc.ID.Hex()); !errors.Is(err, ErrWindowClosed) {
		t.Errorf("sunday submit err = %v, want ErrWindowClosed", err)
	}

	s = newService(repo, midweek)
	submitted, err := s.Submit(context.Background(), engineer, doc.ID.Hex())
	if err != nil {
		t.Fatalf("midweek submit: %v", err)
	}
	if submitted.State != StateEnviada {
		t.Errorf("state = %s, want %s", submitted.State, StateEnviada)
	}
	if submitted.SubmittedAt == nil || !submitted.SubmittedAt.Equal(midweek) {
		t.Errorf("submittedAt = %v, want %v", submitted.SubmittedAt, midweek)
	}
}

func TestEdit_RejectedBeforeAnyWrite(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)

	if _, err := s.Submit(context.Background(), engineer, doc.ID.Hex()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := s.AddActivity(context.Background(), engineer, doc.ID.Hex(), ActivityRequest{
		Name: "Tarde", Day: DayLunes,
	})
	if !errors.Is(err, ErrStateConflict) {
		t.Errorf("edit after submit err = %v, want ErrStateConflict", err)
	}

	// Other engineers cannot edit regardless of state.
	_, err = s.AddActivity(context.Background(), otherEngineer, doc.ID.Hex(), ActivityRequest{
		Name: "Ajena", Day: DayLunes,
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("foreign edit err = %v, want ErrPermissionDenied", err)
	}
}

func TestApprove_TerminalAndLocked(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)
	s.Submit(context.Background(), engineer, doc.ID.Hex())

	if _, err := s.Approve(context.Background(), engineer, doc.ID.Hex(), DecisionRequest{}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("non-admin approve err = %v, want ErrPermissionDenied", err)
	}

	approved, err := s.Approve(context.Background(), admin, doc.ID.Hex(), DecisionRequest{Comments: "ok"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.State != StateAprobada {
		t.Errorf("state = %s, want %s", approved.State, StateAprobada)
	}
	if approved.ApproverID != admin.UserID || approved.ApprovedAt == nil {
		t.Errorf("approval metadata missing: %+v", approved)
	}

	if _, err := s.AddActivity(context.Background(), engineer, doc.ID.Hex(), ActivityRequest{Name: "x", Day: DayLunes}); !errors.Is(err, ErrStateConflict) {
		t.Errorf("edit after approve err = %v, want ErrStateConflict", err)
	}
	if _, err := s.Approve(context.Background(), admin, doc.ID.Hex(), DecisionRequest{}); !errors.Is(err, ErrStateConflict) {
		t.Errorf("double approve err = %v, want ErrStateConflict", err)
	}
}

func TestReject_RequiresCommentsAndReopens(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)
	s.Submit(context.Background(), engineer, doc.ID.Hex())

	if _, err := s.Reject(context.Background(), admin, doc.ID.Hex(), DecisionRequest{Comments: "   "}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty comments err = %v, want ErrValidation", err)
	}
	// Validation failed before any state change.
	current, _ := s.Get(context.Background(), admin, doc.ID.Hex())
	if current.State != StateEnviada {
		t.Fatalf("state after failed reject = %s, want %s", current.State, StateEnviada)
	}

	rejected, err := s.Reject(context.Background(), admin, doc.ID.Hex(), DecisionRequest{Comments: "faltan actividades"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.State != StateRechazada {
		t.Errorf("state = %s, want %s", rejected.State, StateRechazada)
	}
	if len(rejected.Rejections) != 1 || rejected.Rejections[0].Comments != "faltan actividades" {
		t.Errorf("rejection history = %+v", rejected.Rejections)
	}

	// Rechazada is editable again and can be resubmitted; history survives.
	if _, err := s.AddActivity(context.Background(), engineer, doc.ID.Hex(), ActivityRequest{Name: "Correccion", Day: DayJueves}); err != nil {
		t.Errorf("edit after reject: %v", err)
	}
	resubmitted, err := s.Submit(context.Background(), engineer, doc.ID.Hex())
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if len(resubmitted.Rejections) != 1 {
		t.Errorf("rejection history lost on resubmit: %+v", resubmitted.Rejections)
	}
}

func TestList_ScopedByRole(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	createDoc(t, s)
	if _, err := s.Create(context.Background(), otherEngineer, CreatePlanningRequest{
		Week: 3, Year: 2025, PlantID: "planta-2", ProjectID: "proy-2",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := s.List(context.Background(), engineer)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("engineer sees %d docs, want 1", len(mine))
	}

	all, err := s.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d docs, want 2", len(all))
	}
}

func TestRemoveActivity_DropsItsAssignments(t *testing.T) {
	s := newService(newFakeRepo(), midweek)
	doc := createDoc(t, s)

	doc, _ = s.AddActivity(context.Background(), engineer, doc.ID.Hex(), ActivityRequest{Name: "Montaje", Day: DayLunes})
	doc, _ = s.AddActivity(context.Background(), engineer, doc.ID.Hex(), ActivityRequest{Name: "Cableado", Day: DayMartes})
	first, second := doc.Activities[0], doc.Activities[1]

	doc, _ = s.AssignEmployee(context.Background(), engineer, doc.ID.Hex(), AssignEmployeeCommand{EmployeeID: "e1", ActivityID: first.ID})
	doc, _ = s.AssignEmployee(context.Background(), engineer, doc.ID.Hex(), AssignEmployeeCommand{EmployeeID: "e2", ActivityID: second.ID})

	doc, err := s.RemoveActivity(context.Background(), engineer, doc.ID.Hex(), first.ID)
	if err != nil {
		t.Fatalf("remove activity: %v", err)
	}
	if len(doc.Activities) != 1 || doc.Activities[0].ID != second.ID {
		t.Errorf("activities = %+v", doc.Activities)
	}
	if len(doc.Assignments) != 1 || doc.Assignments[0].ActivityID != second.ID {
		t.Errorf("orphaned assignment survived: %+v", doc.Assignments)
	}
}
