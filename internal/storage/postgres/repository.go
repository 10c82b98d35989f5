package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

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

func (p *Postgres) Alerts() AlertRepository { return p.Alert }
func (p *Postgres) Users() UserRepository   { return p.User }
func (p *Postgres) Stats() StatsRepository  { return p.Stat }
