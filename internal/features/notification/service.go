package notification

import (
	"context"
	"fmt"
	"time"

	"go-crm-admin/pkg/condition"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService interface {
	Notify(ctx context.Context, req CreateNotificationRequest) (*Notification, error)
	ListByArea(ctx context.Context, area string) ([]Notification, error)
	UnreadCount(ctx context.Context, area string) (int64, error)
	MarkRead(ctx context.Context, id string) error

	CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	DeleteRule(ctx context.Context, id string) error
}

type NotificationServiceImpl struct {
	Repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) NotificationService {
	return &NotificationServiceImpl{Repo: repo}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	if req.Area == "" || req.Title == "" {
		return nil, fmt.Errorf("area and title are required")
	}

	// One notice per link, ever. A re-submitted planeación keeps its link, so
	// the check makes sweeps idempotent.
	if req.Link != "" {
		exists, err := s.Repo.ExistsByLink(ctx, req.Link)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, nil
		}
	}

	n := &Notification{
		ID:        primitive.NewObjectID(),
		Area:      req.Area,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationServiceImpl) ListByArea(ctx context.Context, area string) ([]Notification, error) {
	return s.Repo.ListByArea(ctx, area)
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, area string) (int64, error) {
	return s.Repo.CountUnread(ctx, area)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}

func (s *NotificationServiceImpl) CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error) {
	if req.Name == "" || req.Area == "" {
		return nil, fmt.Errorf("rule name and area are required")
	}
	if _, err := condition.NewEvaluator(req.Expression); err != nil {
		return nil, err
	}

	rule := &Rule{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Area:       req.Area,
		Expression: req.Expression,
		Title:      req.Title,
		Message:    req.Message,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.CreateRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *NotificationServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	return s.Repo.ListRules(ctx)
}

func (s *NotificationServiceImpl) DeleteRule(ctx context.Context, id string) error {
	return s.Repo.DeleteRule(ctx, id)
}
