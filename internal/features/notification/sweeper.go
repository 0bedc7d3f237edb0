package notification

import (
	"context"
	"fmt"

	"go-crm-admin/internal/features/planning"
	"go-crm-admin/pkg/condition"

	"go.uber.org/zap"
)

// Sweeper periodically matches active notification rules against submitted
// planeaciones and emits one notification per (rule, document) pair. Dedup
// happens in the service via the link key, so re-running a sweep is safe.
type Sweeper struct {
	Notifications NotificationService
	Rules         NotificationRepository
	Plannings     planning.PlanningRepository
	Log           *zap.Logger
}

func NewSweeper(notifications NotificationService, rules NotificationRepository, plannings planning.PlanningRepository, log *zap.Logger) *Sweeper {
	return &Sweeper{
		Notifications: notifications,
		Rules:         rules,
		Plannings:     plannings,
		Log:           log,
	}
}

// Sweep runs one pass. Rule failures are logged and skipped; one broken
// expression must not starve the rest.
func (s *Sweeper) Sweep(ctx context.Context) error {
	rules, err := s.Rules.ListActiveRules(ctx)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	docs, err := s.Plannings.ListByState(ctx, planning.StateEnviada)
	if err != nil {
		return err
	}

	for _, rule := range rules {
		ev, err := condition.NewEvaluator(rule.Expression)
		if err != nil {
			s.Log.Warn("skipping unparseable notification rule",
				zap.String("rule", rule.Name), zap.Error(err))
			continue
		}

		for i := range docs {
			matched, err := ev.Eval(docFields(&docs[i]))
			if err != nil {
				s.Log.Warn("notification rule failed",
					zap.String("rule", rule.Name),
					zap.String("planning", docs[i].ID.Hex()),
					zap.Error(err))
				continue
			}
			if !matched {
				continue
			}

			_, err = s.Notifications.Notify(ctx, CreateNotificationRequest{
				Area:    rule.Area,
				Title:   rule.Title,
				Message: rule.Message,
				Link:    fmt.Sprintf("/dashboard/planeacion/%s#%s", docs[i].ID.Hex(), rule.ID.Hex()),
			})
			if err != nil {
				s.Log.Error("failed to write notification",
					zap.String("rule", rule.Name), zap.Error(err))
			}
		}
	}
	return nil
}

// docFields exposes the planeación fields rules may reference.
func docFields(p *planning.PlanningDocument) map[string]interface{} {
	return map[string]interface{}{
		"state":       string(p.State),
		"week":        p.Week,
		"year":        p.Year,
		"plant":       p.PlantID,
		"project":     p.ProjectID,
		"owner":       p.OwnerUserID,
		"activities":  len(p.Activities),
		"assignments": len(p.Assignments),
		"rejections":  len(p.Rejections),
	}
}
