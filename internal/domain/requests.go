package domain

import "time"

const (
	DefaultNearbyRadiusMeters      = 10000
	DefaultDirectionalRadiusMeters = 2000
	DefaultDirectionalAngle        = 60
)

type ReportAlertRequest struct {
	Type        string   `json:"type" validate:"required,alert_type"`
	Lat         *float64 `json:"lat" validate:"required,lat"`
	Lng         *float64 `json:"lng" validate:"required,lng"`
	Severity    *int     `json:"severity" validate:"omitempty,gte=1,lte=5"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
}

type UpdateAlertRequest struct {
	Type        *string `json:"type" validate:"omitempty,alert_type"`
	Severity    *int    `json:"severity" validate:"omitempty,gte=1,lte=5"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsActive    *bool   `json:"is_active"`
}

type ConfirmAlertRequest struct {
	Type    string  `json:"confirmation_type" validate:"required,confirmation_type"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`
}

// NearbyQuery is filled from the query string. Zero RadiusMeters means default.
type NearbyQuery struct {
	Lat          *float64 `query:"lat" validate:"required,lat"`
	Lng          *float64 `query:"lng" validate:"required,lng"`
	RadiusMeters int      `query:"radius" validate:"gte=100,lte=50000"`
	Type         *string  `query:"type" validate:"omitempty,alert_type"`
	Severity     *int     `query:"severity" validate:"omitempty,gte=1,lte=5"`
}

type DirectionalQuery struct {
	Lat          *float64 `query:"lat" validate:"required,lat"`
	Lng          *float64 `query:"lng" validate:"required,lng"`
	Heading      *float64 `query:"heading" validate:"required,gte=0,lte=360"`
	RadiusMeters int      `query:"radius" validate:"gte=100,lte=10000"`
	AngleDegrees float64  `query:"angle" validate:"gte=10,lte=180"`
}

type LocationUpdateRequest struct {
	Lat     *float64 `json:"lat" validate:"required,lat"`
	Lng     *float64 `json:"lng" validate:"required,lng"`
	Heading *float64 `json:"heading" validate:"omitempty,gte=0,lte=360"`
	Speed   *float64 `json:"speed" validate:"omitempty,gte=0"`
}

// AlertFilter is the storage-side prefilter for nearby and directional search.
// The box is coarse; exact distance and bearing checks run afterwards.
type AlertFilter struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	AllLng         bool
	ActiveAt       time.Time
	Type           *AlertType
	Severity       *int
}
