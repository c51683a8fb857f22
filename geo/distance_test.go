package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyang-health/triage-app/schema"
)

var (
	seoulCityHall = schema.Coordinate{Latitude: 37.5665, Longitude: 126.9780}
	anyang        = schema.Coordinate{Latitude: 37.3943, Longitude: 126.9568}
	busan         = schema.Coordinate{Latitude: 35.1796, Longitude: 129.0756}
)

func TestDistanceIdenticalPointsIsZero(t *testing.T) {
	assert.Equal(t, float64(0), Distance(seoulCityHall, seoulCityHall))
	assert.Equal(t, float64(0), Distance(anyang, anyang))
}

func TestDistanceIsSymmetric(t *testing.T) {
	assert.InDelta(t, Distance(seoulCityHall, busan), Distance(busan, seoulCityHall), 1e-9)
	assert.InDelta(t, Distance(seoulCityHall, anyang), Distance(anyang, seoulCityHall), 1e-9)
}

func TestDistanceIsNonNegative(t *testing.T) {
	pairs := [][2]schema.Coordinate{
		{seoulCityHall, anyang},
		{anyang, busan},
		{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 51.5074, Longitude: -0.1278}},
	}
	for _, p := range pairs {
		assert.True(t, Distance(p[0], p[1]) >= 0)
	}
}

func TestDistanceAntipodalPointsIsFinite(t *testing.T) {
	pairs := [][2]schema.Coordinate{
		{{Latitude: 0, Longitude: 0.0001}, {Latitude: 0, Longitude: -179.9999}},
		{{Latitude: 37.5665, Longitude: 126.978}, {Latitude: -37.5665, Longitude: -53.022}},
	}
	for _, p := range pairs {
		d := Distance(p[0], p[1])
		assert.False(t, math.IsNaN(d))
		// Half the earth's circumference with this formula's constants.
		assert.InDelta(t, 20015, d, 40)
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// Seoul to Busan is roughly 325 km as the crow flies.
	assert.InDelta(t, 325, Distance(seoulCityHall, busan), 10)
	// Seoul City Hall to Anyang is roughly 19 km.
	assert.InDelta(t, 19, Distance(seoulCityHall, anyang), 2)
}

func TestSortByDistanceAscending(t *testing.T) {
	hospitals := []schema.Hospital{
		{ID: "far", Coordinate: &busan},
		{ID: "near", Coordinate: &schema.Coordinate{Latitude: 37.5670, Longitude: 126.9790}},
		{ID: "mid", Coordinate: &anyang},
	}

	SortByDistance(hospitals, &seoulCityHall)

	assert.Equal(t, "near", hospitals[0].ID)
	assert.Equal(t, "mid", hospitals[1].ID)
	assert.Equal(t, "far", hospitals[2].ID)
	assert.True(t, hospitals[0].HasDistance)
	assert.True(t, hospitals[0].DistanceKm <= hospitals[1].DistanceKm)
	assert.True(t, hospitals[1].DistanceKm <= hospitals[2].DistanceKm)
}

func TestSortByDistanceWithoutUserCoordinateKeepsServerOrder(t *testing.T) {
	hospitals := []schema.Hospital{
		{ID: "b", Coordinate: &busan},
		{ID: "a", Coordinate: &anyang},
		{ID: "c"},
	}

	SortByDistance(hospitals, nil)

	assert.Equal(t, "b", hospitals[0].ID)
	assert.Equal(t, "a", hospitals[1].ID)
	assert.Equal(t, "c", hospitals[2].ID)
	for _, h := range hospitals {
		assert.False(t, h.HasDistance)
	}
}

func TestSortByDistancePutsUnlocatedHospitalsLast(t *testing.T) {
	hospitals := []schema.Hospital{
		{ID: "nowhere-1"},
		{ID: "located", Coordinate: &anyang},
		{ID: "nowhere-2"},
	}

	SortByDistance(hospitals, &seoulCityHall)

	assert.Equal(t, "located", hospitals[0].ID)
	assert.Equal(t, "nowhere-1", hospitals[1].ID)
	assert.Equal(t, "nowhere-2", hospitals[2].ID)
	assert.False(t, hospitals[1].HasDistance)
}
