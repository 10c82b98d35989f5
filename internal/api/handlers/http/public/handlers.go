package public

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/middleware"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Alerts interface {
	QueryNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.AlertWithDistance, error)
	QueryDirectional(ctx context.Context, q domain.DirectionalQuery) ([]domain.AlertWithDistance, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*domain.AlertDetails, error)
	UpdateAlert(ctx context.Context, alertID, requesterID uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error)
	DeleteAlert(ctx context.Context, alertID, requesterID uuid.UUID) error
	ListReports(ctx context.Context, userID uuid.UUID) ([]domain.Alert, error)
}

// Reporter is the write path that also fans events out to live sessions.
type Reporter interface {
	ReportAlert(ctx context.Context, userID uuid.UUID, req domain.ReportAlertRequest) (*domain.Alert, error)
	ConfirmAlert(ctx context.Context, alertID, userID uuid.UUID, req domain.ConfirmAlertRequest) (*domain.ConfirmationResult, error)
}

type Handler struct {
	logger   *slog.Logger
	Alerts   Alerts
	Reporter Reporter
}

func NewHandler(logger *slog.Logger, alerts Alerts, reporter Reporter) *Handler {
	return &Handler{
		logger:   logger,
		Alerts:   alerts,
		Reporter: reporter,
	}
}

type alertsResponse struct {
	Alerts []domain.AlertWithDistance `json:"alerts"`
	Count  int                        `json:"count"`
}

type confirmedAlert struct {
	ID             uuid.UUID `json:"id"`
	ConfirmedCount int       `json:"confirmed_count"`
	DismissedCount int       `json:"dismissed_count"`
	IsActive       bool      `json:"is_active"`
}

func (h *Handler) AlertsNearby(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertsNearby", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	p := newQueryParser(r)
	q := domain.NearbyQuery{
		Lat:          p.float("lat"),
		Lng:          p.float("lng"),
		RadiusMeters: p.int("radius"),
		Type:         p.string("type"),
		Severity:     p.optionalInt("severity"),
	}
	if err := p.err(); err != nil {
		h.handleError(w, r, err)
		return
	}

	alerts, err := h.Alerts.QueryNearby(r.Context(), q)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("nearby alerts", slog.Int("count", len(alerts)))
	h.writeJSON(w, http.StatusOK, alertsResponse{Alerts: alerts, Count: len(alerts)})
}

func (h *Handler) AlertsDirectional(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertsDirectional", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	p := newQueryParser(r)
	q := domain.DirectionalQuery{
		Lat:          p.float("lat"),
		Lng:          p.float("lng"),
		Heading:      p.float("heading"),
		RadiusMeters: p.int("radius"),
	}
	if angle := p.float("angle"); angle != nil {
		q.AngleDegrees = *angle
	}
	if err := p.err(); err != nil {
		h.handleError(w, r, err)
		return
	}

	alerts, err := h.Alerts.QueryDirectional(r.Context(), q)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("directional alerts", slog.Int("count", len(alerts)))
	h.writeJSON(w, http.StatusOK, alertsResponse{Alerts: alerts, Count: len(alerts)})
}

func (h *Handler) AlertReport(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertReport", slog.String("remote", r.RemoteAddr))

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthenticated)
		return
	}

	var req domain.ReportAlertRequest
	if !h.decode(w, r, &req) {
		return
	}

	a, err := h.Reporter.ReportAlert(r.Context(), userID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert reported", slog.String("id", a.ID.String()), slog.String("type", string(a.Type)))
	h.writeJSON(w, http.StatusCreated, map[string]any{"alert": a})
}

func (h *Handler) AlertGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertGet", slog.String("remote", r.RemoteAddr))

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	details, err := h.Alerts.GetAlert(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"alert": details})
}

func (h *Handler) AlertUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertUpdate", slog.String("remote", r.RemoteAddr))

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthenticated)
		return
	}
	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateAlertRequest
	if !h.decode(w, r, &req) {
		return
	}

	a, err := h.Alerts.UpdateAlert(r.Context(), id, userID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"alert": a})
}

func (h *Handler) AlertDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertDelete", slog.String("remote", r.RemoteAddr))

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthenticated)
		return
	}
	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	if err := h.Alerts.DeleteAlert(r.Context(), id, userID); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert deleted", slog.String("id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AlertConfirm(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AlertConfirm", slog.String("remote", r.RemoteAddr))

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthenticated)
		return
	}
	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.ConfirmAlertRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.Reporter.ConfirmAlert(r.Context(), id, userID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"alert": confirmedAlert{
		ID:             res.Alert.ID,
		ConfirmedCount: res.Alert.ConfirmedCount,
		DismissedCount: res.Alert.DismissedCount,
		IsActive:       res.Alert.IsActive,
	}})
}

func (h *Handler) UserReports(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("UserReports", slog.String("remote", r.RemoteAddr))

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthenticated)
		return
	}

	reports, err := h.Alerts.ListReports(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"alerts": reports,
		"count":  len(reports),
	})
}
