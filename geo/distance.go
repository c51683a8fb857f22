package geo

import (
	"math"
	"sort"

	"github.com/anyang-health/triage-app/schema"
)

// Distance returns the great-circle distance between two coordinates in
// kilometers, using the spherical law of cosines.
func Distance(a, b schema.Coordinate) float64 {
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0
	}

	radA := math.Pi * a.Latitude / 180
	radB := math.Pi * b.Latitude / 180
	radTheta := math.Pi * (a.Longitude - b.Longitude) / 180

	// Float error can push d just outside the acos domain for identical
	// or antipodal points.
	d := math.Sin(radA)*math.Sin(radB) + math.Cos(radA)*math.Cos(radB)*math.Cos(radTheta)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}

	return math.Acos(d) * 180 / math.Pi * 60 * 1.1515 * 1.609344
}

// SortByDistance annotates each hospital that carries its own coordinate
// with the distance from the given point and sorts the slice ascending by
// that distance. Hospitals without a coordinate keep their relative order
// after all annotated ones. When from is nil the slice is left in
// server-given order and no distance is assumed.
func SortByDistance(hospitals []schema.Hospital, from *schema.Coordinate) {
	if from == nil {
		return
	}

	for i := range hospitals {
		h := &hospitals[i]
		if h.Coordinate != nil {
			h.DistanceKm = Distance(*from, *h.Coordinate)
			h.HasDistance = true
		} else {
			h.DistanceKm = 0
			h.HasDistance = false
		}
	}

	sort.SliceStable(hospitals, func(i, j int) bool {
		a, b := hospitals[i], hospitals[j]
		if a.HasDistance != b.HasDistance {
			return a.HasDistance
		}
		if !a.HasDistance {
			return false
		}
		return a.DistanceKm < b.DistanceKm
	})
}
