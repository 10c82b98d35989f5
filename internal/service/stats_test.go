package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/service"
	mock_service "github.com/nikicasio/traffic-alert-app/internal/service/mocks"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

func TestStatsService_AdminStats_CombinesStoreAndPresence(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	repo := mock_service.NewMockStatsRepository(ctrl)
	presence := mock_service.NewMockPresenceStats(ctrl)

	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		AlertStats(gomock.Any(), now, midnight).
		Return(domain.AlertStats{TotalAlerts: 10, ActiveAlerts: 4, AlertsToday: 2, ConfirmationsToday: 7}, nil).
		Times(1)
	presence.EXPECT().
		Stats().
		Return(domain.PresenceStats{Sessions: 5, Authenticated: 3, Located: 2, Topics: 4}).
		Times(1)

	svc := service.NewStatsService(repo, presence)
	svc.SetClock(func() time.Time { return now })

	got, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.Alerts.TotalAlerts)
	assert.EqualValues(t, 7, got.Alerts.ConfirmationsToday)
	assert.Equal(t, 5, got.Presence.Sessions)
	assert.Equal(t, 4, got.Presence.Topics)
}

func TestStatsService_AdminStats_RepoError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	repo := mock_service.NewMockStatsRepository(ctrl)
	repo.EXPECT().AlertStats(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.AlertStats{}, e.ErrTransient).Times(1)

	_, err := service.NewStatsService(repo, nil).AdminStats(context.Background())
	assert.ErrorIs(t, err, e.ErrTransient)
}
