package admin

import (
	"context"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Alerts interface {
	GetAlert(ctx context.Context, alertID uuid.UUID) (*domain.AlertDetails, error)
	AdminToggleAlert(ctx context.Context, alertID uuid.UUID) (*domain.Alert, error)
	AdminDeleteAlert(ctx context.Context, alertID uuid.UUID) error
}

type StatsGetter interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
}

type Handler struct {
	logger *slog.Logger
	Alerts Alerts
	Stats  StatsGetter
}

func NewHandler(logger *slog.Logger, alerts Alerts, stats StatsGetter) *Handler {
	return &Handler{
		logger: logger,
		Alerts: alerts,
		Stats:  stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("remote", r.RemoteAddr))

	stats, err := h.Stats.AdminStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("stats success",
		slog.Int64("active_alerts", stats.Alerts.ActiveAlerts),
		slog.Int("sessions", stats.Presence.Sessions),
	)
	h.writeJSON(w, http.StatusOK, stats)
}

// AdminAlertGet returns any alert with its reporter and confirmations, active or not.
func (h *Handler) AdminAlertGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertGet", slog.String("remote", r.RemoteAddr))

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

func (h *Handler) AdminAlertToggle(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertToggle", slog.String("remote", r.RemoteAddr))

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	a, err := h.Alerts.AdminToggleAlert(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert toggled", slog.String("id", id.String()), slog.Bool("is_active", a.IsActive))
	h.writeJSON(w, http.StatusOK, map[string]any{"alert": a})
}

func (h *Handler) AdminAlertDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertDelete", slog.String("remote", r.RemoteAddr))

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	if err := h.Alerts.AdminDeleteAlert(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
