package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertPolice      AlertType = "police"
	AlertRoadwork    AlertType = "roadwork"
	AlertObstacle    AlertType = "obstacle"
	AlertAccident    AlertType = "accident"
	AlertFire        AlertType = "fire"
	AlertTraffic     AlertType = "traffic"
	AlertBlockedRoad AlertType = "blocked_road"
)

const (
	// DeactivationMinVotes is the number of confirmations an alert needs
	// before the dismissal ratio is taken into account.
	DeactivationMinVotes = 5
	// DeactivationDismissRatio is the share of dismissals that turns an alert off.
	DeactivationDismissRatio = 0.6

	DefaultSeverity = 1
)

type Alert struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Type           AlertType  `json:"type"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
	Severity       int        `json:"severity"`
	Description    *string    `json:"description"`
	ConfirmedCount int        `json:"confirmed_count"`
	DismissedCount int        `json:"dismissed_count"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	Reporter       *UserRef   `json:"reporter,omitempty"`
}

// EffectivelyActive reports whether the alert is flagged active and not expired at now.
func (a Alert) EffectivelyActive(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

// ApplyConfirmation bumps the counter matching t and switches the alert off
// once the dismissal rule fires. It never switches an alert back on.
func (a *Alert) ApplyConfirmation(t ConfirmationType) {
	if t == ConfirmationConfirmed {
		a.ConfirmedCount++
	} else {
		a.DismissedCount++
	}
	if ShouldDeactivate(a.ConfirmedCount, a.DismissedCount) {
		a.IsActive = false
	}
}

func ShouldDeactivate(confirmed, dismissed int) bool {
	total := confirmed + dismissed
	if total < DeactivationMinVotes {
		return false
	}
	return float64(dismissed)/float64(total) >= DeactivationDismissRatio
}

type AlertWithDistance struct {
	Alert
	DistanceKm     float64 `json:"-"`
	DistanceMeters int64   `json:"distance_meters"`
}

func NewAlertWithDistance(a Alert, km float64) AlertWithDistance {
	return AlertWithDistance{
		Alert:          a,
		DistanceKm:     km,
		DistanceMeters: int64(math.Round(km * 1000)),
	}
}

type AlertDetails struct {
	Alert
	Confirmations []Confirmation `json:"confirmations"`
}
