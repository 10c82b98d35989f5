package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/presence"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
	"github.com/nikicasio/traffic-alert-app/pkg/validator"
)

const (
	MsgAuthenticate   = "authenticate"
	MsgLocationUpdate = "location_update"
	MsgReportAlert    = "report_alert"
	MsgConfirmAlert   = "confirm_alert"
	MsgSubscribe      = "subscribe"
	MsgUnsubscribe    = "unsubscribe"
	MsgPing           = "ping"

	MsgAuthenticated   = "authenticated"
	MsgLocationUpdated = "location_updated"
	MsgAlertReported   = "alert_reported"
	MsgAlertConfirmed  = "alert_confirmed"
	MsgSubscribed      = "subscribed"
	MsgUnsubscribed    = "unsubscribed"
	MsgPong            = "pong"
	MsgError           = "error"
)

type authenticatePayload struct {
	Token string `json:"token"`
}

type channelPayload struct {
	Channel string `json:"channel"`
}

type confirmPayload struct {
	AlertID string `json:"alert_id"`
	domain.ConfirmAlertRequest
}

type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type confirmedAlert struct {
	ID             uuid.UUID `json:"id"`
	ConfirmedCount int       `json:"confirmed_count"`
	DismissedCount int       `json:"dismissed_count"`
	IsActive       bool      `json:"is_active"`
}

func (c *client) dispatch(ctx context.Context, msg inbound) {
	switch msg.Type {
	case MsgPing:
		c.send(MsgPong, nil)
	case MsgAuthenticate:
		var p authenticatePayload
		if !c.decode(msg.Data, &p) {
			return
		}
		c.authenticate(ctx, p.Token)
	case MsgLocationUpdate:
		c.locationUpdate(msg.Data)
	case MsgSubscribe:
		c.subscription(msg.Data, true)
	case MsgUnsubscribe:
		c.subscription(msg.Data, false)
	case MsgReportAlert:
		c.reportAlert(ctx, msg.Data)
	case MsgConfirmAlert:
		c.confirmAlert(ctx, msg.Data)
	default:
		c.sendError("unknown_type", "unknown message type: "+msg.Type, nil)
	}
}

func (c *client) authenticate(ctx context.Context, credential string) {
	userID, err := c.h.hub.Authenticate(ctx, c.s, credential)
	if err != nil {
		c.fail(err)
		return
	}
	c.send(MsgAuthenticated, map[string]string{"user_id": userID.String()})
}

func (c *client) locationUpdate(data json.RawMessage) {
	var req domain.LocationUpdateRequest
	if !c.decode(data, &req) {
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		c.fail(err)
		return
	}

	pos := presence.Position{Lat: *req.Lat, Lng: *req.Lng}
	if req.Heading != nil {
		pos.Heading = *req.Heading
	}
	if req.Speed != nil {
		pos.Speed = *req.Speed
	}

	topics, err := c.h.hub.UpdateLocation(c.s, pos)
	if err != nil {
		c.fail(err)
		return
	}
	c.send(MsgLocationUpdated, map[string]any{"topics": topics})
}

func (c *client) subscription(data json.RawMessage, subscribe bool) {
	var p channelPayload
	if !c.decode(data, &p) {
		return
	}

	if subscribe {
		topic, err := c.h.hub.Subscribe(c.s, p.Channel)
		if err != nil {
			c.fail(err)
			return
		}
		c.send(MsgSubscribed, channelPayload{Channel: string(topic)})
		return
	}

	topic, err := c.h.hub.Unsubscribe(c.s, p.Channel)
	if err != nil {
		c.fail(err)
		return
	}
	c.send(MsgUnsubscribed, channelPayload{Channel: string(topic)})
}

func (c *client) reportAlert(ctx context.Context, data json.RawMessage) {
	userID, ok := c.s.UserID()
	if !ok {
		c.fail(e.ErrUnauthenticated)
		return
	}

	var req domain.ReportAlertRequest
	if !c.decode(data, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	a, err := c.h.gw.ReportAlert(ctx, userID, req)
	if err != nil {
		c.fail(err)
		return
	}
	c.send(MsgAlertReported, map[string]any{"alert": a})
}

func (c *client) confirmAlert(ctx context.Context, data json.RawMessage) {
	userID, ok := c.s.UserID()
	if !ok {
		c.fail(e.ErrUnauthenticated)
		return
	}

	var p confirmPayload
	if !c.decode(data, &p) {
		return
	}
	alertID, err := uuid.Parse(p.AlertID)
	if err != nil {
		c.fail(e.NewValidationError("alert_id", "must be a valid id"))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := c.h.gw.ConfirmAlert(ctx, alertID, userID, p.ConfirmAlertRequest)
	if err != nil {
		c.fail(err)
		return
	}
	c.send(MsgAlertConfirmed, map[string]any{"alert": confirmedAlert{
		ID:             res.Alert.ID,
		ConfirmedCount: res.Alert.ConfirmedCount,
		DismissedCount: res.Alert.DismissedCount,
		IsActive:       res.Alert.IsActive,
	}})
}

func (c *client) decode(data json.RawMessage, dst any) bool {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.sendError("invalid_message", "malformed data", nil)
		return false
	}
	return true
}

func (c *client) fail(err error) {
	var verr *e.ValidationError
	switch {
	case errors.As(err, &verr):
		c.sendError("validation_failed", "validation failed", verr.Fields)
	case errors.Is(err, e.ErrUnauthenticated):
		c.sendError("unauthenticated", "authentication required", nil)
	case errors.Is(err, e.ErrForbidden):
		c.sendError("forbidden", "not allowed", nil)
	case errors.Is(err, e.ErrDuplicateConfirmation):
		c.sendError("duplicate_confirmation", "you have already acted on this alert", nil)
	case errors.Is(err, e.ErrNotFound):
		c.sendError("not_found", "alert not found", nil)
	case errors.Is(err, e.ErrInvalidCoordinates):
		c.sendError("invalid_coordinates", "coordinates out of range", nil)
	case errors.Is(err, e.ErrInvalidInput):
		c.logger.Info("invalid realtime input", slog.Any("error", err))
		c.sendError("invalid_input", "invalid input", nil)
	default:
		c.logger.Error("realtime operation failed", slog.Any("error", err))
		c.sendError("internal", "internal error", nil)
	}
}

func (c *client) sendError(code, message string, fields map[string]string) {
	c.send(MsgError, errorPayload{Code: code, Message: message, Fields: fields})
}
