package service

import (
	"context"
	"time"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

type StatsService struct {
	repo     StatsRepository
	presence PresenceStats
	now      func() time.Time
}

func NewStatsService(repo StatsRepository, presence PresenceStats) *StatsService {
	return &StatsService{repo: repo, presence: presence, now: time.Now}
}

// AdminStats combines stored alert counts with the live presence snapshot.
// "Today" starts at UTC midnight.
func (s *StatsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	alerts, err := s.repo.AlertStats(ctx, now, since)
	if err != nil {
		return nil, err
	}

	out := &domain.AdminStats{Alerts: alerts}
	if s.presence != nil {
		out.Presence = s.presence.Stats()
	}
	return out, nil
}
