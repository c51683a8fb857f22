package schema

// Default fallback point used when no position fix can be obtained:
// Seoul City Hall.
const (
	DefaultLatitude  = 37.5665
	DefaultLongitude = 126.9780
)

// Coordinate is a WGS84 position. Once captured for a wizard run it is
// never mutated.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Valid() bool {
	if c.Latitude < -90 || c.Latitude > 90 {
		return false
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return false
	}
	return c != Coordinate{}
}

func DefaultCoordinate() Coordinate {
	return Coordinate{
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
	}
}
