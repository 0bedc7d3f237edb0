package notification

import (
	"context"
	"strings"
	"testing"

	"go-crm-admin/internal/features/planning"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	notifications []Notification
	rules         []Rule
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByArea(_ context.Context, area string) ([]Notification, error) {
	var out []Notification
	for _, n := range f.notifications {
		if n.Area == area {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, area string) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.Area == area && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for i := range f.notifications {
		if f.notifications[i].ID.Hex() == id {
			f.notifications[i].Read = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) ExistsByLink(_ context.Context, link string) (bool, error) {
	for _, n := range f.notifications {
		if n.Link == link {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) CreateRule(_ context.Context, r *Rule) error {
	f.rules = append(f.rules, *r)
	return nil
}

func (f *fakeNotificationRepo) ListActiveRules(_ context.Context) ([]Rule, error) {
	var out []Rule
	for _, r := range f.rules {
		if r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ListRules(_ context.Context) ([]Rule, error) {
	return f.rules, nil
}

func (f *fakeNotificationRepo) DeleteRule(_ context.Context, _ string) error { return nil }

type fakePlanningRepo struct {
	docs []planning.PlanningDocument
}

func (f *fakePlanningRepo) Create(_ context.Context, _ *planning.PlanningDocument) error { return nil }

func (f *fakePlanningRepo) FindByID(_ context.Context, _ string) (*planning.PlanningDocument, error) {
	return nil, planning.ErrNotFound
}

func (f *fakePlanningRepo) Update(_ context.Context, _ *planning.PlanningDocument) error { return nil }

func (f *fakePlanningRepo) ListByOwner(_ context.Context, _ string) ([]planning.PlanningDocument, error) {
	return nil, nil
}

func (f *fakePlanningRepo) ListAll(_ context.Context) ([]planning.PlanningDocument, error) {
	return f.docs, nil
}

func (f *fakePlanningRepo) ListByState(_ context.Context, state planning.State) ([]planning.PlanningDocument, error) {
	var out []planning.PlanningDocument
	for _, d := range f.docs {
		if d.State == state {
			out = append(out, d)
		}
	}
	return out, nil
}

func newSweeper(repo *fakeNotificationRepo, plannings *fakePlanningRepo) *Sweeper {
	return NewSweeper(NewNotificationService(repo), repo, plannings, zap.NewNop())
}

func TestSweepEmitsOncePerRuleAndDocument(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{rules: []Rule{{
		ID:         primitive.NewObjectID(),
		Name:       "enviadas pendientes",
		Area:       "aprobaciones",
		Expression: `state == "enviada"`,
		Title:      "Planeación pendiente",
		Active:     true,
	}}}
	plannings := &fakePlanningRepo{docs: []planning.PlanningDocument{
		{ID: primitive.NewObjectID(), State: planning.StateEnviada, Week: 40},
		{ID: primitive.NewObjectID(), State: planning.StateEnviada, Week: 41},
	}}
	sw := newSweeper(repo, plannings)

	if err := sw.Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(repo.notifications) != 2 {
		t.Fatalf("notifications = %d, want 2", len(repo.notifications))
	}

	// A second pass over the same documents adds nothing.
	if err := sw.Sweep(ctx); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(repo.notifications) != 2 {
		t.Fatalf("notifications after resweep = %d, want 2", len(repo.notifications))
	}
}

func TestSweepFiltersByExpression(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{rules: []Rule{{
		ID:         primitive.NewObjectID(),
		Name:       "semana tardía",
		Area:       "aprobaciones",
		Expression: `state == "enviada" && week > 50`,
		Title:      "Cierre de año",
		Active:     true,
	}}}
	target := primitive.NewObjectID()
	plannings := &fakePlanningRepo{docs: []planning.PlanningDocument{
		{ID: primitive.NewObjectID(), State: planning.StateEnviada, Week: 10},
		{ID: target, State: planning.StateEnviada, Week: 52},
	}}

	if err := newSweeper(repo, plannings).Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(repo.notifications))
	}
	if !strings.Contains(repo.notifications[0].Link, target.Hex()) {
		t.Fatalf("link %q does not reference matching document", repo.notifications[0].Link)
	}
}

func TestSweepSkipsBrokenRule(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{rules: []Rule{
		{
			ID:         primitive.NewObjectID(),
			Name:       "rota",
			Area:       "aprobaciones",
			Expression: `this is not tengo ((`,
			Active:     true,
		},
		{
			ID:         primitive.NewObjectID(),
			Name:       "sana",
			Area:       "aprobaciones",
			Expression: `state == "enviada"`,
			Title:      "Pendiente",
			Active:     true,
		},
	}}
	plannings := &fakePlanningRepo{docs: []planning.PlanningDocument{
		{ID: primitive.NewObjectID(), State: planning.StateEnviada},
	}}

	if err := newSweeper(repo, plannings).Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1 from the healthy rule", len(repo.notifications))
	}
}

func TestInactiveRulesAreIgnored(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{rules: []Rule{{
		ID:         primitive.NewObjectID(),
		Name:       "apagada",
		Area:       "aprobaciones",
		Expression: `state == "enviada"`,
		Active:     false,
	}}}
	plannings := &fakePlanningRepo{docs: []planning.PlanningDocument{
		{ID: primitive.NewObjectID(), State: planning.StateEnviada},
	}}

	if err := newSweeper(repo, plannings).Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(repo.notifications) != 0 {
		t.Fatalf("notifications = %d, want 0", len(repo.notifications))
	}
}
