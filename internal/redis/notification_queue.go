package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

// NotificationQueue is a FIFO of push jobs kept in a redis list.
type NotificationQueue struct {
	client *redis.Client
	key    string
}

func NewNotificationQueue(client *redis.Client, key string) *NotificationQueue {
	return &NotificationQueue{client: client, key: key}
}

func (q *NotificationQueue) Enqueue(ctx context.Context, job domain.NotificationJob) error {
	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("redis.NotificationQueue.Enqueue: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, b).Err(); err != nil {
		return e.WrapError(ctx, "redis.NotificationQueue.Enqueue", err)
	}
	return nil
}

// BRPop blocks up to timeout for the oldest job. It returns e.ErrQueueEmpty when nothing arrived.
func (q *NotificationQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.NotificationJob, error) {
	var job domain.NotificationJob

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return job, e.ErrQueueEmpty
		}
		return job, e.WrapError(ctx, "redis.NotificationQueue.BRPop", err)
	}
	if len(res) < 2 {
		return job, e.ErrQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return job, fmt.Errorf("redis.NotificationQueue.BRPop: decode: %w", err)
	}
	return job, nil
}

func (q *NotificationQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, e.WrapError(ctx, "redis.NotificationQueue.Len", err)
	}
	return n, nil
}
