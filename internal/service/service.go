package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListCandidates(ctx context.Context, f domain.AlertFilter) ([]domain.Alert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Alert, error)
	Confirm(ctx context.Context, c *domain.Confirmation) (*domain.Alert, error)
	LoadConfirmationsFor(ctx context.Context, alertIDs []uuid.UUID) (map[uuid.UUID][]domain.Confirmation, error)
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

type UserRepository interface {
	Users(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)
}

type StatsRepository interface {
	AlertStats(ctx context.Context, now, since time.Time) (domain.AlertStats, error)
}

type NotificationQueue interface {
	Enqueue(ctx context.Context, job domain.NotificationJob) error
}

type NotificationSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.NotificationJob, error)
}

// EventPublisher fans events out to realtime sessions. It never fails.
type EventPublisher interface {
	PublishAlertCreated(evt domain.AlertCreatedEvent) int
	PublishAlertConfirmed(evt domain.AlertConfirmedEvent) int
}

type PresenceStats interface {
	Stats() domain.PresenceStats
}

type Recorder interface {
	AlertReported(alertType string)
	AlertConfirmed(confirmationType string)
	NotificationJob(outcome string)
}

type Service struct {
	Alerts  *AlertService
	Gateway *Gateway
	Stats   *StatsService
}

func NewService(alerts *AlertService, gateway *Gateway, stats *StatsService) *Service {
	return &Service{
		Alerts:  alerts,
		Gateway: gateway,
		Stats:   stats,
	}
}

type nopRecorder struct{}

func (nopRecorder) AlertReported(string)   {}
func (nopRecorder) AlertConfirmed(string)  {}
func (nopRecorder) NotificationJob(string) {}
