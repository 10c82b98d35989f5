package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

const enqueueTimeout = 2 * time.Second

// Gateway is the single entry point for alert mutations that other users must
// hear about. The store write happens first; only a successful write is published.
type Gateway struct {
	alerts *AlertService
	hub    EventPublisher
	queue  NotificationQueue
	rec    Recorder
	logger *slog.Logger
}

// NewGateway accepts a nil queue when push notifications are disabled.
func NewGateway(logger *slog.Logger, alerts *AlertService, hub EventPublisher, queue NotificationQueue, rec Recorder) *Gateway {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Gateway{
		alerts: alerts,
		hub:    hub,
		queue:  queue,
		rec:    rec,
		logger: logger,
	}
}

func (g *Gateway) ReportAlert(ctx context.Context, userID uuid.UUID, req domain.ReportAlertRequest) (*domain.Alert, error) {
	a, err := g.alerts.ReportAlert(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	g.rec.AlertReported(string(a.Type))

	n := g.hub.PublishAlertCreated(domain.NewAlertCreatedEvent(*a))
	g.logger.Debug("alert.created published", slog.String("id", a.ID.String()), slog.Int("recipients", n))

	g.enqueue(ctx, notificationFor(*a))
	return a, nil
}

func (g *Gateway) ConfirmAlert(ctx context.Context, alertID, userID uuid.UUID, req domain.ConfirmAlertRequest) (*domain.ConfirmationResult, error) {
	res, err := g.alerts.ConfirmAlert(ctx, alertID, userID, req)
	if err != nil {
		return nil, err
	}
	g.rec.AlertConfirmed(string(res.Confirmation.Type))

	n := g.hub.PublishAlertConfirmed(domain.NewAlertConfirmedEvent(res.Alert, res.Confirmation))
	g.logger.Debug("alert.confirmed published", slog.String("id", alertID.String()), slog.Int("recipients", n))

	return res, nil
}

// enqueue outlives the caller's context but not by much.
func (g *Gateway) enqueue(ctx context.Context, job domain.NotificationJob) {
	if g.queue == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	if err := g.queue.Enqueue(ctx, job); err != nil {
		g.rec.NotificationJob("enqueue_failed")
		g.logger.Error("enqueue notification failed",
			slog.String("alert_id", job.AlertID.String()),
			slog.Any("error", err),
		)
		return
	}
	g.rec.NotificationJob("enqueued")
}

func notificationFor(a domain.Alert) domain.NotificationJob {
	title := humanize(string(a.Type)) + " reported nearby"
	body := fmt.Sprintf("Severity %d", a.Severity)
	if a.Description != nil && *a.Description != "" {
		body = *a.Description
	}
	return domain.NotificationJob{
		AlertID:    a.ID,
		Type:       a.Type,
		Lat:        a.Lat,
		Lng:        a.Lng,
		Severity:   a.Severity,
		Title:      title,
		Body:       body,
		ReportedAt: a.CreatedAt,
	}
}

func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
