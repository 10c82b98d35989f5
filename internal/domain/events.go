package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventAlertCreated   = "alert.created"
	EventAlertConfirmed = "alert.confirmed"
)

type AlertCreatedEvent struct {
	ID             uuid.UUID `json:"id"`
	Type           AlertType `json:"type"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	Severity       int       `json:"severity"`
	Description    *string   `json:"description"`
	ConfirmedCount int       `json:"confirmed_count"`
	DismissedCount int       `json:"dismissed_count"`
	ReportedAt     time.Time `json:"reported_at"`
	Reporter       UserRef   `json:"reporter"`
}

func NewAlertCreatedEvent(a Alert) AlertCreatedEvent {
	evt := AlertCreatedEvent{
		ID:             a.ID,
		Type:           a.Type,
		Lat:            a.Lat,
		Lng:            a.Lng,
		Severity:       a.Severity,
		Description:    a.Description,
		ConfirmedCount: a.ConfirmedCount,
		DismissedCount: a.DismissedCount,
		ReportedAt:     a.CreatedAt,
		Reporter:       UserRef{ID: a.UserID},
	}
	if a.Reporter != nil {
		evt.Reporter = *a.Reporter
	}
	return evt
}

type AlertConfirmedEvent struct {
	AlertID          uuid.UUID        `json:"alert_id"`
	ConfirmationType ConfirmationType `json:"confirmation_type"`
	ConfirmedCount   int              `json:"confirmed_count"`
	DismissedCount   int              `json:"dismissed_count"`
	IsActive         bool             `json:"is_active"`
	User             UserRef          `json:"user"`
}

func NewAlertConfirmedEvent(a Alert, c Confirmation) AlertConfirmedEvent {
	evt := AlertConfirmedEvent{
		AlertID:          a.ID,
		ConfirmationType: c.Type,
		ConfirmedCount:   a.ConfirmedCount,
		DismissedCount:   a.DismissedCount,
		IsActive:         a.IsActive,
		User:             UserRef{ID: c.UserID},
	}
	if c.User != nil {
		evt.User = *c.User
	}
	return evt
}

// NotificationJob is queued for the push relay after an alert is reported.
type NotificationJob struct {
	AlertID    uuid.UUID `json:"alert_id"`
	Type       AlertType `json:"type"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Severity   int       `json:"severity"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	ReportedAt time.Time `json:"reported_at"`
}
