package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikicasio/traffic-alert-app/internal/geo"
)

func TestTopicsFor(t *testing.T) {
	t.Parallel()

	got := TopicsFor(48.7758, 9.1829)
	assert.Equal(t, []Topic{Global, "location.48.78_9.18"}, got)
}

func TestParseTopic(t *testing.T) {
	t.Parallel()

	topic, err := ParseTopic("global")
	require.NoError(t, err)
	assert.Equal(t, Global, topic)

	topic, err = ParseTopic("location.48.780_9.18")
	require.NoError(t, err)
	assert.Equal(t, Topic("location.48.78_9.18"), topic)
	assert.True(t, topic.IsLocation())

	for _, bad := range []string{"", "private.user.1", "location.", "location.91_0", "location.a_b", "location.1_2_3", "location.0_181"} {
		_, err := ParseTopic(bad)
		assert.Error(t, err, "topic %q", bad)
	}
}

func TestNeighborhoodTopics_ContainsOwnCellAndGlobal(t *testing.T) {
	t.Parallel()

	set := NeighborhoodTopics(48.7758, 9.1829, 5)
	assert.True(t, set.Has(Global))
	assert.True(t, set.Has("location.48.78_9.18"))
}

func TestNeighborhoodTopics_NoFalseNegativesWithinRadius(t *testing.T) {
	t.Parallel()

	lat, lng, r := 48.7758, 9.1829, 5.0
	set := NeighborhoodTopics(lat, lng, r)

	// sample a grid of points around the alert; all within r must map to a topic in the set
	for dLat := -0.06; dLat <= 0.06; dLat += 0.0025 {
		for dLng := -0.09; dLng <= 0.09; dLng += 0.0025 {
			pLat, pLng := lat+dLat, lng+dLng
			if geo.HaversineKm(lat, lng, pLat, pLng) > r {
				continue
			}
			topic := LocationTopic(geo.GridCell(pLat, pLng))
			assert.True(t, set.Has(topic), "missing %s for point (%v,%v)", topic, pLat, pLng)
		}
	}
}

func TestNeighborhoodTopics_ExcludesFarCells(t *testing.T) {
	t.Parallel()

	set := NeighborhoodTopics(48.7758, 9.1829, 5)

	// ~20 km north
	far := LocationTopic(geo.GridCell(48.9558, 9.1829))
	assert.False(t, set.Has(far))
}

func TestNeighborhoodTopics_AntimeridianWraps(t *testing.T) {
	t.Parallel()

	set := NeighborhoodTopics(0, 179.999, 2)
	assert.True(t, set.Has(LocationTopic(geo.GridCell(0, -179.99))))
}

func TestNeighborhoodTopics_ZeroRadius(t *testing.T) {
	t.Parallel()

	set := NeighborhoodTopics(10, 10, 0)
	assert.Len(t, set, 2)
}

func TestNeighborhoodTopics_NearPoleCoversWideLongitudeSpan(t *testing.T) {
	t.Parallel()

	lat, lng, r := 88.99943, 108.92953, 10.0
	set := NeighborhoodTopics(lat, lng, r)

	pLat, pLng := 88.97590, 112.23414
	require.LessOrEqual(t, geo.HaversineKm(lat, lng, pLat, pLng), r)
	assert.True(t, set.Has(LocationTopic(geo.GridCell(pLat, pLng))))
}

func TestNeighborhoodTopics_NoFalseNegativesNearPole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		lat, lng, r float64
	}{
		{lat: 89.5, lng: -40, r: 10},
		{lat: -88.7, lng: 170, r: 5},
		// circle contains the pole
		{lat: 89.97, lng: 12, r: 5},
	}

	for _, tc := range cases {
		set := NeighborhoodTopics(tc.lat, tc.lng, tc.r)

		for dLat := -0.1; dLat <= 0.1; dLat += 0.01 {
			for dLng := -180.0; dLng < 180; dLng += 0.25 {
				pLat, pLng := tc.lat+dLat, tc.lng+dLng
				if pLat > 90 || pLat < -90 {
					continue
				}
				if pLng > 180 {
					pLng -= 360
				}
				if pLng < -180 {
					pLng += 360
				}
				if geo.HaversineKm(tc.lat, tc.lng, pLat, pLng) > tc.r {
					continue
				}
				topic := LocationTopic(geo.GridCell(pLat, pLng))
				assert.True(t, set.Has(topic), "missing %s for point (%v,%v) around (%v,%v)", topic, pLat, pLng, tc.lat, tc.lng)
			}
		}
	}
}

func TestNeighborhoodTopics_AntimeridianIncludesBothEdges(t *testing.T) {
	t.Parallel()

	set := NeighborhoodTopics(10, 179.995, 1)
	assert.True(t, set.Has(LocationTopic(geo.Cell{Lat: 10, Lng: 180})))
	assert.True(t, set.Has(LocationTopic(geo.Cell{Lat: 10, Lng: -180})))
}
