package realtime_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikicasio/traffic-alert-app/internal/auth"
	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/presence"
	"github.com/nikicasio/traffic-alert-app/internal/realtime"
	mock_realtime "github.com/nikicasio/traffic-alert-app/internal/realtime/mocks"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

const testSecret = "test-secret"

type envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type errorData struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type fixture struct {
	srv    *httptest.Server
	hub    *presence.Hub
	gw     *mock_realtime.MockGateway
	tokens *auth.JWTAuthenticator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := gomock.NewController(t)

	tokens := auth.NewJWTAuthenticator(testSecret, "")
	hub := presence.NewHub(logger, tokens, nil, presence.Options{SendBuffer: 16, NearbyRadiusKm: 5})
	gw := mock_realtime.NewMockGateway(ctrl)

	h := realtime.NewHandler(logger, hub, gw, config.RealtimeConfig{
		PingInterval:   time.Second,
		PongWait:       5 * time.Second,
		WriteWait:      time.Second,
		MaxMessageSize: 4096,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, hub: hub, gw: gw, tokens: tokens}
}

func (f *fixture) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := f.tokens.Sign(userID, "tester", time.Hour)
	require.NoError(t, err)
	return tok
}

func (f *fixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if data != nil {
		msg["data"] = data
	}
	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func readError(t *testing.T, conn *websocket.Conn) errorData {
	t.Helper()
	env := read(t, conn)
	require.Equal(t, realtime.MsgError, env.Type)
	var d errorData
	require.NoError(t, json.Unmarshal(env.Data, &d))
	return d
}

func (f *fixture) authenticated(t *testing.T) (*websocket.Conn, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	conn := f.dial(t, "")
	send(t, conn, realtime.MsgAuthenticate, map[string]string{"token": f.token(t, userID)})
	require.Equal(t, realtime.MsgAuthenticated, read(t, conn).Type)
	return conn, userID
}

func (f *fixture) located(t *testing.T, lat, lng float64) *websocket.Conn {
	t.Helper()
	conn, _ := f.authenticated(t)
	send(t, conn, realtime.MsgLocationUpdate, map[string]float64{"lat": lat, "lng": lng})
	require.Equal(t, realtime.MsgLocationUpdated, read(t, conn).Type)
	return conn
}

func TestRealtime_PingPong(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn := f.dial(t, "")

	send(t, conn, realtime.MsgPing, nil)
	env := read(t, conn)
	assert.Equal(t, realtime.MsgPong, env.Type)
	assert.NotZero(t, env.Timestamp)
}

func TestRealtime_LocationBeforeAuth_RejectedButConnectionKept(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn := f.dial(t, "")

	send(t, conn, realtime.MsgLocationUpdate, map[string]float64{"lat": 48.78, "lng": 9.18})
	assert.Equal(t, "unauthenticated", readError(t, conn).Code)

	send(t, conn, realtime.MsgPing, nil)
	assert.Equal(t, realtime.MsgPong, read(t, conn).Type)
}

func TestRealtime_BadToken(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn := f.dial(t, "")

	send(t, conn, realtime.MsgAuthenticate, map[string]string{"token": "garbage"})
	assert.Equal(t, "unauthenticated", readError(t, conn).Code)
}

func TestRealtime_TokenOnUpgrade(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()

	conn := f.dial(t, "?token="+f.token(t, userID))

	env := read(t, conn)
	require.Equal(t, realtime.MsgAuthenticated, env.Type)
	var d map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, userID.String(), d["user_id"])
}

func TestRealtime_LocationUpdate_JoinsCellTopics(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn, _ := f.authenticated(t)

	send(t, conn, realtime.MsgLocationUpdate, map[string]float64{"lat": 48.7758, "lng": 9.1829, "heading": 90})
	env := read(t, conn)
	require.Equal(t, realtime.MsgLocationUpdated, env.Type)

	var d struct {
		Topics []string `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.ElementsMatch(t, []string{"global", "location.48.78_9.18"}, d.Topics)
}

func TestRealtime_LocationUpdate_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn, _ := f.authenticated(t)

	send(t, conn, realtime.MsgLocationUpdate, map[string]float64{"lat": 95, "lng": 9})
	d := readError(t, conn)
	assert.Equal(t, "validation_failed", d.Code)
	assert.Contains(t, d.Fields, "lat")
}

func TestRealtime_SubscribeUnsubscribe(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn, _ := f.authenticated(t)

	send(t, conn, realtime.MsgSubscribe, map[string]string{"channel": "location.48.78_9.18"})
	env := read(t, conn)
	require.Equal(t, realtime.MsgSubscribed, env.Type)
	assert.JSONEq(t, `{"channel":"location.48.78_9.18"}`, string(env.Data))

	send(t, conn, realtime.MsgUnsubscribe, map[string]string{"channel": "location.48.78_9.18"})
	assert.Equal(t, realtime.MsgUnsubscribed, read(t, conn).Type)

	send(t, conn, realtime.MsgSubscribe, map[string]string{"channel": "private.admins"})
	d := readError(t, conn)
	assert.Equal(t, "invalid_input", d.Code)
	assert.Equal(t, "invalid input", d.Message)
}

func TestRealtime_InvalidInput_HidesInternalChain(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn, userID := f.authenticated(t)

	f.gw.EXPECT().
		ReportAlert(gomock.Any(), userID, gomock.Any()).
		Return(nil, fmt.Errorf("service.Alert.ReportAlert: postgres.Alert.Create: %w", e.ErrInvalidInput)).
		Times(1)

	send(t, conn, realtime.MsgReportAlert, map[string]any{"type": "police", "lat": 48.78, "lng": 9.18})
	d := readError(t, conn)
	assert.Equal(t, "invalid_input", d.Code)
	assert.Equal(t, "invalid input", d.Message)
	assert.NotContains(t, d.Message, "postgres")
}

func TestRealtime_ReportAlert_GoesThroughGateway(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn, userID := f.authenticated(t)

	alertID := uuid.New()
	f.gw.EXPECT().
		ReportAlert(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, req domain.ReportAlertRequest) (*domain.Alert, error) {
			assert.Equal(t, "police", req.Type)
			require.NotNil(t, req.Lat)
			assert.Equal(t, 48.78, *req.Lat)
			return &domain.Alert{ID: alertID, UserID: userID, Type: domain.AlertPolice, Lat: 48.78, Lng: 9.18, IsActive: true}, nil
		}).
		Times(1)

	send(t, conn, realtime.MsgReportAlert, map[string]any{"type": "police", "lat": 48.78, "lng": 9.18})
	env := read(t, conn)
	require.Equal(t, realtime.MsgAlertReported, env.Type)

	var d struct {
		Alert domain.Alert `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, alertID, d.Alert.ID)
}

func TestRealtime_ReportAlert_RequiresAuth(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn := f.dial(t, "")

	send(t, conn, realtime.MsgReportAlert, map[string]any{"type": "police", "lat": 1, "lng": 1})
	assert.Equal(t, "unauthenticated", readError(t, conn).Code)
}

func TestRealtime_ConfirmAlert(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn, userID := f.authenticated(t)

	alertID := uuid.New()
	f.gw.EXPECT().
		ConfirmAlert(gomock.Any(), alertID, userID, domain.ConfirmAlertRequest{Type: "dismissed"}).
		Return(&domain.ConfirmationResult{Alert: domain.Alert{ID: alertID, DismissedCount: 1, IsActive: true}}, nil).
		Times(1)
	f.gw.EXPECT().
		ConfirmAlert(gomock.Any(), alertID, userID, gomock.Any()).
		Return(nil, e.ErrDuplicateConfirmation).
		Times(1)

	send(t, conn, realtime.MsgConfirmAlert, map[string]string{"alert_id": alertID.String(), "confirmation_type": "dismissed"})
	env := read(t, conn)
	require.Equal(t, realtime.MsgAlertConfirmed, env.Type)
	assert.JSONEq(t,
		`{"alert":{"id":"`+alertID.String()+`","confirmed_count":0,"dismissed_count":1,"is_active":true}}`,
		string(env.Data))

	send(t, conn, realtime.MsgConfirmAlert, map[string]string{"alert_id": alertID.String(), "confirmation_type": "dismissed"})
	assert.Equal(t, "duplicate_confirmation", readError(t, conn).Code)

	send(t, conn, realtime.MsgConfirmAlert, map[string]string{"alert_id": "nope", "confirmation_type": "dismissed"})
	d := readError(t, conn)
	assert.Equal(t, "validation_failed", d.Code)
	assert.Contains(t, d.Fields, "alert_id")
}

func TestRealtime_UnknownType(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	conn := f.dial(t, "")

	send(t, conn, "teleport", nil)
	assert.Equal(t, "unknown_type", readError(t, conn).Code)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, "invalid_message", readError(t, conn).Code)
}

func TestRealtime_AlertCreated_ReachesNearbySessionsOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	near := f.located(t, 48.7758, 9.1829)
	far := f.located(t, 52.52, 13.405)

	evt := domain.AlertCreatedEvent{ID: uuid.New(), Type: domain.AlertAccident, Lat: 48.78, Lng: 9.18, Severity: 3}
	assert.Equal(t, 1, f.hub.PublishAlertCreated(evt))

	env := read(t, near)
	require.Equal(t, domain.EventAlertCreated, env.Type)
	var got domain.AlertCreatedEvent
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, evt.ID, got.ID)

	send(t, far, realtime.MsgPing, nil)
	assert.Equal(t, realtime.MsgPong, read(t, far).Type)
}

func TestRealtime_Disconnect_CleansUpSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	conn := f.located(t, 48.78, 9.18)
	require.Equal(t, 1, f.hub.Stats().Sessions)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		st := f.hub.Stats()
		return st.Sessions == 0 && st.Topics == 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Zero(t, f.hub.PublishAlertCreated(domain.AlertCreatedEvent{ID: uuid.New(), Lat: 48.78, Lng: 9.18}))
}
