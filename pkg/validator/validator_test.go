package validator

import (
	"errors"
	"testing"

	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

type sample struct {
	Lat      *float64 `json:"lat" validate:"required,lat"`
	Lng      *float64 `json:"lng" validate:"required,lng"`
	Type     string   `json:"type" validate:"alert_type"`
	Kind     string   `json:"confirmation_type" validate:"omitempty,confirmation_type"`
	Severity int      `json:"severity" validate:"gte=1,lte=5"`
	Comment  *string  `json:"comment" validate:"omitempty,max=5"`
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func TestValidateStruct_OK(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(sample{Lat: f(90), Lng: f(180), Type: "police", Kind: "not_there", Severity: 5, Comment: s("ok")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateStruct_ZeroCoordinatesAreValid(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(sample{Lat: f(0), Lng: f(0), Type: "fire", Severity: 1}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateStruct_FieldErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(sample{Lat: f(91), Type: "ufo", Kind: "maybe", Severity: 9, Comment: s("too long")})
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var ve *e.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	for _, field := range []string{"lat", "lng", "type", "confirmation_type", "severity", "comment"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected field %q in %v", field, ve.Fields)
		}
	}
	if ve.Fields["lat"] != "must be between -90 and 90" {
		t.Fatalf("unexpected lat message %q", ve.Fields["lat"])
	}
	if ve.Fields["lng"] != "is required" {
		t.Fatalf("unexpected lng message %q", ve.Fields["lng"])
	}
}
