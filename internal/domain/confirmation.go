package domain

import (
	"time"

	"github.com/google/uuid"
)

type ConfirmationType string

const (
	ConfirmationConfirmed ConfirmationType = "confirmed"
	ConfirmationDismissed ConfirmationType = "dismissed"
	ConfirmationNotThere  ConfirmationType = "not_there"
)

type Confirmation struct {
	ID        uuid.UUID        `json:"id"`
	AlertID   uuid.UUID        `json:"alert_id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      ConfirmationType `json:"confirmation_type"`
	Comment   *string          `json:"comment"`
	CreatedAt time.Time        `json:"created_at"`
	User      *UserRef         `json:"user,omitempty"`
}

type ConfirmationResult struct {
	Alert        Alert
	Confirmation Confirmation
}
