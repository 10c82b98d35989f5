// Package geo holds the spherical helpers used for alert search and
// broadcast routing. All inputs are degrees, distances are kilometres.
package geo

import (
	"math"
	"strconv"
)

const EarthRadiusKm = 6371.0

// KmPerDegreeLat is the length of one degree of latitude.
const KmPerDegreeLat = 111.195

// CellSize is the grid resolution in degrees.
const CellSize = 0.01

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// rounding can push a slightly outside [0,1]
	a = math.Min(1, math.Max(0, a))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BearingRad returns the initial great-circle bearing from point 1 to point 2
// in radians, clockwise from north, in (-π, π].
func BearingRad(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := deg2rad(lat1)
	phi2 := deg2rad(lat2)
	dLng := deg2rad(lng2 - lng1)

	y := math.Sin(dLng) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLng)
	return math.Atan2(y, x)
}

// AngleDiffRad returns a-b normalized into [-π, π).
func AngleDiffRad(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}

// DegToRad is exported for callers that take headings in degrees.
func DegToRad(deg float64) float64 { return deg2rad(deg) }

type Cell struct {
	Lat float64
	Lng float64
}

// GridCell buckets a coordinate to two decimals, rounding halves up.
func GridCell(lat, lng float64) Cell {
	return Cell{Lat: round2(lat), Lng: round2(lng)}
}

func (c Cell) String() string {
	return formatCoord(c.Lat) + "_" + formatCoord(c.Lng)
}

func round2(v float64) float64 {
	r := math.Floor(v*100+0.5) / 100
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const boxMargin = 1.001

type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	// AllLng is set when the box touches a pole or crosses the antimeridian.
	AllLng bool
}

// BoundingBox returns a box that contains every point within radiusKm of the centre.
func BoundingBox(lat, lng, radiusKm float64) Box {
	dLat := radiusKm / KmPerDegreeLat * boxMargin
	b := Box{
		MinLat: math.Max(-90, lat-dLat),
		MaxLat: math.Min(90, lat+dLat),
	}

	cosLat := math.Cos(deg2rad(math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat))))
	if b.MinLat <= -90 || b.MaxLat >= 90 || cosLat < 1e-6 {
		b.AllLng = true
		b.MinLng, b.MaxLng = -180, 180
		return b
	}

	dLng := radiusKm / (KmPerDegreeLat * cosLat) * boxMargin
	b.MinLng = lng - dLng
	b.MaxLng = lng + dLng
	if b.MinLng < -180 || b.MaxLng > 180 {
		b.AllLng = true
		b.MinLng, b.MaxLng = -180, 180
	}
	return b
}
