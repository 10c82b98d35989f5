package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

func TestAlertPredicate_Minimal(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args := alertPredicate(domain.AlertFilter{
		MinLat: 1, MaxLat: 2, MinLng: 3, MaxLng: 4, ActiveAt: now,
	})

	want := "is_active = true AND (expires_at IS NULL OR expires_at > $1) AND lat BETWEEN $2 AND $3 AND lng BETWEEN $4 AND $5"
	if where != want {
		t.Fatalf("unexpected where:\n got=%s\nwant=%s", where, want)
	}
	if !reflect.DeepEqual(args, []any{now, 1.0, 2.0, 3.0, 4.0}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestAlertPredicate_AllLngAndFilters(t *testing.T) {
	t.Parallel()

	typ := domain.AlertFire
	sev := 4
	where, args := alertPredicate(domain.AlertFilter{
		MinLat: -90, MaxLat: -89, AllLng: true, Type: &typ, Severity: &sev,
	})

	want := "is_active = true AND (expires_at IS NULL OR expires_at > $1) AND lat BETWEEN $2 AND $3 AND type = $4 AND severity = $5"
	if where != want {
		t.Fatalf("unexpected where:\n got=%s\nwant=%s", where, want)
	}
	if len(args) != 5 || args[3] != "fire" || args[4] != 4 {
		t.Fatalf("unexpected args %v", args)
	}
}
