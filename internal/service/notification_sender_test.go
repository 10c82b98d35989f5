package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/service"
	mock_service "github.com/nikicasio/traffic-alert-app/internal/service/mocks"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

// expectOneJob hands out job once, then stops the sender on the next poll.
func expectOneJob(source *mock_service.MockNotificationSource, job domain.NotificationJob, cancel context.CancelFunc) {
	first := source.EXPECT().BRPop(gomock.Any(), gomock.Any()).Return(job, nil).Times(1)
	source.EXPECT().
		BRPop(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Duration) (domain.NotificationJob, error) {
			cancel()
			return domain.NotificationJob{}, e.ErrQueueEmpty
		}).
		After(first).
		AnyTimes()
}

func TestNotificationSender_Run_PostsJob(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	job := domain.NotificationJob{AlertID: uuid.New(), Type: domain.AlertFire, Title: "Fire reported nearby"}

	var got domain.NotificationJob
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := mock_service.NewMockNotificationSource(ctrl)
	rec := mock_service.NewMockRecorder(ctrl)
	expectOneJob(source, job, cancel)
	rec.EXPECT().NotificationJob("sent").Times(1)

	sender := service.NewNotificationSender(newTestLogger(), config.NotificationConfig{URL: srv.URL}, source, rec)
	sender.Run(ctx)

	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	assert.Equal(t, job.AlertID, got.AlertID)
	assert.Equal(t, job.Title, got.Title)
}

func TestNotificationSender_Run_RetriesThenGivesUp(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := mock_service.NewMockNotificationSource(ctrl)
	rec := mock_service.NewMockRecorder(ctrl)
	expectOneJob(source, domain.NotificationJob{AlertID: uuid.New()}, cancel)
	rec.EXPECT().NotificationJob("failed").Times(1)

	sender := service.NewNotificationSender(newTestLogger(), config.NotificationConfig{URL: srv.URL}, source, rec)
	sender.SetBackoff(time.Millisecond)
	sender.Run(ctx)

	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestNotificationSender_Run_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	source := mock_service.NewMockNotificationSource(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		service.NewNotificationSender(newTestLogger(), config.NotificationConfig{URL: "http://127.0.0.1:0"}, source, nil).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sender did not stop")
	}
}
