package workers_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/workers"
	mock_workers "github.com/nikicasio/traffic-alert-app/internal/workers/mocks"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRetention_BadSchedule(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	_, err := workers.NewRetention(newTestLogger(), mock_workers.NewMockPurger(ctrl), config.RetentionConfig{
		Schedule: "every tuesday-ish",
		Keep:     time.Hour,
	})
	assert.Error(t, err)
}

func TestRetention_Purge_PassesKeep(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	purger := mock_workers.NewMockPurger(ctrl)
	purger.EXPECT().PurgeExpired(gomock.Any(), 48*time.Hour).Return(int64(7), nil).Times(1)

	r, err := workers.NewRetention(newTestLogger(), purger, config.RetentionConfig{Schedule: "@hourly", Keep: 48 * time.Hour})
	require.NoError(t, err)

	n, err := r.Purge(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}

func TestRetention_Purge_Error(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	purger := mock_workers.NewMockPurger(ctrl)
	purger.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), e.ErrTransient).Times(1)

	r, err := workers.NewRetention(newTestLogger(), purger, config.RetentionConfig{Schedule: "@daily", Keep: time.Hour})
	require.NoError(t, err)

	_, err = r.Purge(context.Background())
	assert.ErrorIs(t, err, e.ErrTransient)
}

func TestRetention_Run_FiresOnScheduleAndStops(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	fired := make(chan struct{}, 1)
	purger := mock_workers.NewMockPurger(ctrl)
	purger.EXPECT().
		PurgeExpired(gomock.Any(), time.Hour).
		DoAndReturn(func(ctx context.Context, _ time.Duration) (int64, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			select {
			case fired <- struct{}{}:
			default:
			}
			return 0, nil
		}).
		MinTimes(1)

	r, err := workers.NewRetention(newTestLogger(), purger, config.RetentionConfig{Schedule: "@every 1s", Keep: time.Hour})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("purge never ran")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
