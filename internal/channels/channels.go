// Package channels names the broadcast topics sessions subscribe to.
// A topic is either the global topic or a location topic for a 0.01° grid cell.
package channels

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nikicasio/traffic-alert-app/internal/geo"
)

type Topic string

const (
	Global Topic = "global"

	locationPrefix = "location."
)

// kmPerCellLat is the north-south extent of one grid step.
const kmPerCellLat = geo.KmPerDegreeLat * geo.CellSize

// maxSteps bounds north-south expansion so a huge radius cannot explode the topic set.
const maxSteps = 200

// ringSteps is the number of grid steps that make up one full circle of longitude.
const ringSteps = 36000

func LocationTopic(c geo.Cell) Topic {
	return Topic(locationPrefix + c.String())
}

func (t Topic) IsLocation() bool {
	return strings.HasPrefix(string(t), locationPrefix)
}

// TopicsFor returns the two topics a single point belongs to.
func TopicsFor(lat, lng float64) []Topic {
	return []Topic{Global, LocationTopic(geo.GridCell(lat, lng))}
}

// ParseTopic validates a client supplied topic name.
func ParseTopic(name string) (Topic, error) {
	if name == string(Global) {
		return Global, nil
	}
	if !strings.HasPrefix(name, locationPrefix) {
		return "", fmt.Errorf("unknown topic %q", name)
	}

	parts := strings.Split(strings.TrimPrefix(name, locationPrefix), "_")
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed location topic %q", name)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || lat < -90 || lat > 90 {
		return "", fmt.Errorf("malformed location topic %q", name)
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || lng < -180 || lng > 180 {
		return "", fmt.Errorf("malformed location topic %q", name)
	}

	// canonical form so "location.48.780_9.18" and "location.48.78_9.18" are one topic
	return LocationTopic(geo.GridCell(lat, lng)), nil
}

type Set map[Topic]struct{}

func (s Set) Has(t Topic) bool {
	_, ok := s[t]
	return ok
}

func (s Set) Add(t Topic) { s[t] = struct{}{} }

// NeighborhoodTopics returns global plus every location topic whose cell may
// hold a point within radiusKm of (lat, lng). Extra cells are acceptable,
// missing ones are not.
func NeighborhoodTopics(lat, lng, radiusKm float64) Set {
	latSteps := steps(radiusKm, kmPerCellLat)
	centre := geo.GridCell(lat, lng)

	out := make(Set, 2*latSteps+2)
	out.Add(Global)

	for i := -latSteps; i <= latSteps; i++ {
		row := geo.GridCell(centre.Lat+float64(i)*geo.CellSize, 0).Lat
		if row < -90 || row > 90 {
			continue
		}

		lngSteps, ring := rowLngSteps(lat, row, radiusKm)
		if ring {
			for j := 0; j <= ringSteps; j++ {
				out.addCell(row, -180+float64(j)*geo.CellSize)
			}
			continue
		}
		for j := -lngSteps; j <= lngSteps; j++ {
			out.addCell(row, wrapLng(centre.Lng+float64(j)*geo.CellSize))
		}
	}
	return out
}

// rowLngSteps sizes the east-west walk for one latitude row. Cells shrink
// towards the poles, so the bound uses the most poleward latitude a point
// in the row or the centre can have. ring is set when the whole circle of
// longitude must be covered.
func rowLngSteps(lat, rowLat, radiusKm float64) (n int, ring bool) {
	if radiusKm <= 0 {
		return 0, false
	}
	poleward := math.Min(90, math.Max(math.Abs(lat), math.Abs(rowLat)+geo.CellSize))
	cosLat := math.Cos(geo.DegToRad(poleward))

	// sin(d/2) >= cos(phi) * sin(dLng/2) for any two points within distance d
	s := math.Sin(radiusKm/geo.EarthRadiusKm/2) / cosLat
	if cosLat <= 0 || s >= 1 {
		return 0, true
	}
	dLng := 2 * math.Asin(s) * 180 / math.Pi

	n = int(math.Ceil(dLng/geo.CellSize)) + 1
	if 2*n+1 >= ringSteps {
		return 0, true
	}
	return n, false
}

// addCell adds the topic for the cell at (lat, lng). Longitudes -180 and 180
// bucket to distinct cells, so both are added on the antimeridian.
func (s Set) addCell(lat, lng float64) {
	c := geo.GridCell(lat, lng)
	s.Add(LocationTopic(c))
	if c.Lng == 180 || c.Lng == -180 {
		s.Add(LocationTopic(geo.Cell{Lat: c.Lat, Lng: -c.Lng}))
	}
}

func steps(radiusKm, kmPerStep float64) int {
	if radiusKm <= 0 {
		return 0
	}
	// +1 covers a point sitting near the far edge of the centre cell
	n := int(math.Ceil(radiusKm/kmPerStep)) + 1
	if n > maxSteps {
		return maxSteps
	}
	return n
}

func wrapLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}
