// Package realtime exposes the presence hub over websockets.
package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/presence"
)

const opTimeout = 10 * time.Second

//go:generate mockgen -source=handler.go -destination=mocks/mock.go
type Gateway interface {
	ReportAlert(ctx context.Context, userID uuid.UUID, req domain.ReportAlertRequest) (*domain.Alert, error)
	ConfirmAlert(ctx context.Context, alertID, userID uuid.UUID, req domain.ConfirmAlertRequest) (*domain.ConfirmationResult, error)
}

type Handler struct {
	logger   *slog.Logger
	hub      *presence.Hub
	gw       Gateway
	cfg      config.RealtimeConfig
	upgrader websocket.Upgrader
}

func NewHandler(logger *slog.Logger, hub *presence.Hub, gw Gateway, cfg config.RealtimeConfig) *Handler {
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongWait {
		cfg.PingInterval = cfg.PongWait * 9 / 10
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = 10 * time.Second
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 8192
	}
	return &Handler{
		logger: logger,
		hub:    hub,
		gw:     gw,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and runs the connection until either side closes it.
// A credential on the upgrade request authenticates the session immediately.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	s := h.hub.Connect()
	c := &client{
		h:      h,
		conn:   conn,
		s:      s,
		logger: h.logger.With(slog.String("session_id", s.ID.String())),
	}
	defer h.hub.Disconnect(s)

	go c.writePump()

	if cred := credentialFrom(r); cred != "" {
		c.authenticate(r.Context(), cred)
	}

	c.readPump(r.Context())
}

func credentialFrom(r *http.Request) string {
	if v := r.Header.Get("Authorization"); strings.HasPrefix(v, "Bearer ") {
		return v
	}
	return r.URL.Query().Get("token")
}
