package admin_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/api/handlers/http/admin"
	mock_admin "github.com/nikicasio/traffic-alert-app/internal/api/handlers/http/admin/mocks"
	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func newRouter(h *admin.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/admin/stats", h.AdminStats)
	r.Get("/admin/alerts/{id}", h.AdminAlertGet)
	r.Patch("/admin/alerts/{id}/toggle", h.AdminAlertToggle)
	r.Delete("/admin/alerts/{id}", h.AdminAlertDelete)
	return r
}

func TestAdminStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), mock_admin.NewMockAlerts(ctrl), stats)

	want := &domain.AdminStats{
		Alerts:   domain.AlertStats{TotalAlerts: 12, ActiveAlerts: 5, AlertsToday: 3, ConfirmationsToday: 9},
		Presence: domain.PresenceStats{Sessions: 4, Authenticated: 3, Located: 2, Topics: 3},
	}
	stats.EXPECT().AdminStats(gomock.Any()).Return(want, nil).Times(1)

	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var got domain.AdminStats
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got != *want {
		t.Fatalf("unexpected stats: got=%+v want=%+v", got, *want)
	}
}

func TestAdminStats_Error_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), mock_admin.NewMockAlerts(ctrl), stats)

	stats.EXPECT().AdminStats(gomock.Any()).Return(nil, e.ErrTransient).Times(1)

	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d got %d body=%s", http.StatusInternalServerError, rr.Code, rr.Body.String())
	}
}

func TestAdminAlertDelete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	cases := []struct {
		name   string
		path   string
		err    error
		called bool
		want   int
	}{
		{name: "deleted", path: "/admin/alerts/" + id.String(), called: true, want: http.StatusNoContent},
		{name: "missing", path: "/admin/alerts/" + id.String(), err: e.ErrNotFound, called: true, want: http.StatusNotFound},
		{name: "bad id", path: "/admin/alerts/42", want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			alerts := mock_admin.NewMockAlerts(ctrl)
			h := admin.NewHandler(newTestLogger(), alerts, mock_admin.NewMockStatsGetter(ctrl))

			if tc.called {
				alerts.EXPECT().AdminDeleteAlert(gomock.Any(), id).Return(tc.err).Times(1)
			}

			rr := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, tc.path, nil))

			if rr.Code != tc.want {
				t.Fatalf("expected %d got %d body=%s", tc.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAdminAlertGet_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_admin.NewMockAlerts(ctrl)
	h := admin.NewHandler(newTestLogger(), alerts, mock_admin.NewMockStatsGetter(ctrl))

	id := uuid.New()
	voter := uuid.New()
	alerts.EXPECT().
		GetAlert(gomock.Any(), id).
		Return(&domain.AlertDetails{
			Alert: domain.Alert{ID: id, Type: domain.AlertPolice, IsActive: false},
			Confirmations: []domain.Confirmation{
				{ID: uuid.New(), AlertID: id, UserID: voter, Type: domain.ConfirmationConfirmed},
			},
		}, nil).
		Times(1)

	rr := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/alerts/"+id.String(), nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var got struct {
		Alert domain.AlertDetails `json:"alert"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.Alert.ID != id || len(got.Alert.Confirmations) != 1 || got.Alert.Confirmations[0].UserID != voter {
		t.Fatalf("unexpected alert: %+v", got.Alert)
	}
}

func TestAdminAlertGet_Errors(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	cases := []struct {
		name   string
		path   string
		err    error
		called bool
		want   int
	}{
		{name: "missing", path: "/admin/alerts/" + id.String(), err: e.ErrNotFound, called: true, want: http.StatusNotFound},
		{name: "store down", path: "/admin/alerts/" + id.String(), err: e.ErrTransient, called: true, want: http.StatusInternalServerError},
		{name: "bad id", path: "/admin/alerts/x", want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			alerts := mock_admin.NewMockAlerts(ctrl)
			h := admin.NewHandler(newTestLogger(), alerts, mock_admin.NewMockStatsGetter(ctrl))

			if tc.called {
				alerts.EXPECT().GetAlert(gomock.Any(), id).Return(nil, tc.err).Times(1)
			}

			rr := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if rr.Code != tc.want {
				t.Fatalf("expected %d got %d body=%s", tc.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAdminAlertToggle(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	cases := []struct {
		name       string
		path       string
		result     *domain.Alert
		err        error
		called     bool
		want       int
		wantActive bool
	}{
		{name: "deactivated", path: "/admin/alerts/" + id.String() + "/toggle", result: &domain.Alert{ID: id, IsActive: false}, called: true, want: http.StatusOK},
		{name: "reactivated", path: "/admin/alerts/" + id.String() + "/toggle", result: &domain.Alert{ID: id, IsActive: true}, called: true, want: http.StatusOK, wantActive: true},
		{name: "missing", path: "/admin/alerts/" + id.String() + "/toggle", err: e.ErrNotFound, called: true, want: http.StatusNotFound},
		{name: "bad id", path: "/admin/alerts/42/toggle", want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			alerts := mock_admin.NewMockAlerts(ctrl)
			h := admin.NewHandler(newTestLogger(), alerts, mock_admin.NewMockStatsGetter(ctrl))

			if tc.called {
				alerts.EXPECT().AdminToggleAlert(gomock.Any(), id).Return(tc.result, tc.err).Times(1)
			}

			rr := httptest.NewRecorder()
			newRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, tc.path, nil))

			if rr.Code != tc.want {
				t.Fatalf("expected %d got %d body=%s", tc.want, rr.Code, rr.Body.String())
			}
			if tc.want != http.StatusOK {
				return
			}

			var got struct {
				Alert domain.Alert `json:"alert"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid json response: %v", err)
			}
			if got.Alert.ID != id || got.Alert.IsActive != tc.wantActive {
				t.Fatalf("unexpected alert: %+v", got.Alert)
			}
		})
	}
}
