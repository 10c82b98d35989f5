package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

// NotificationSender drains the push queue and posts each job to the relay.
type NotificationSender struct {
	logger  *slog.Logger
	cfg     config.NotificationConfig
	source  NotificationSource
	rec     Recorder
	http    *http.Client
	backoff time.Duration
}

func NewNotificationSender(logger *slog.Logger, cfg config.NotificationConfig, source NotificationSource, rec Recorder) *NotificationSender {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &NotificationSender{
		logger:  logger,
		cfg:     cfg,
		source:  source,
		rec:     rec,
		http:    &http.Client{Timeout: 5 * time.Second},
		backoff: time.Second,
	}
}

func (s *NotificationSender) Run(ctx context.Context) {
	s.logger.Info("notification sender started", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		job, err := s.source.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			sleep(ctx, 500*time.Millisecond)
			continue
		}

		s.logger.Info("sending notification", slog.String("alert_id", job.AlertID.String()))
		if s.sendWithRetry(ctx, job) {
			s.rec.NotificationJob("sent")
		} else {
			s.rec.NotificationJob("failed")
		}
	}
}

func (s *NotificationSender) sendWithRetry(ctx context.Context, job domain.NotificationJob) bool {
	const maxRetries = 3

	body, err := json.Marshal(job)
	if err != nil {
		s.logger.Error("marshal notification failed", slog.String("error", err.Error()))
		return false
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return false
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create notification request failed", slog.String("error", err.Error()))
			return false
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return true
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("notification failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		if attempt < maxRetries {
			sleep(ctx, time.Duration(attempt)*s.backoff)
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
