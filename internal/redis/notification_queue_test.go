//go:build integration

package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

var testClient *goredis.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	tc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	port, _ := tc.MappedPort(ctx, "6379/tcp")
	testClient = goredis.NewClient(&goredis.Options{Addr: host + ":" + port.Port()})

	code := m.Run()

	_ = testClient.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func TestNotificationQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	q := NewNotificationQueue(testClient, "test:push:"+uuid.NewString())

	first := domain.NotificationJob{AlertID: uuid.New(), Type: domain.AlertPolice, Title: "first"}
	second := domain.NotificationJob{AlertID: uuid.New(), Type: domain.AlertFire, Title: "second"}
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, first.AlertID, got.AlertID)
	assert.Equal(t, "first", got.Title)

	got, err = q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second.AlertID, got.AlertID)
}

func TestNotificationQueue_EmptyTimesOut(t *testing.T) {
	q := NewNotificationQueue(testClient, "test:push:"+uuid.NewString())

	_, err := q.BRPop(context.Background(), time.Second)
	assert.True(t, errors.Is(err, e.ErrQueueEmpty), "got %v", err)
}
