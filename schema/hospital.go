package schema

// Hospital is the single canonical hospital shape. Server responses use
// drifting field names across revisions; they are folded into this type
// once, at the API boundary, and every screen works with this shape only.
type Hospital struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Address              string      `json:"address"`
	BusinessHours        string      `json:"businessHours"`
	OperatingStatus      string      `json:"operatingStatus"`
	Specialties          []string    `json:"specialties"`
	Phone                string      `json:"phone,omitempty"`
	Coordinate           *Coordinate `json:"coordinate,omitempty"`
	RecommendationReason string      `json:"recommendationReason,omitempty"`

	// DistanceKm is always derived client-side from the current user
	// coordinate, never taken from the server. HasDistance distinguishes
	// "0 km away" from "distance unknown".
	DistanceKm  float64 `json:"distanceKm,omitempty"`
	HasDistance bool    `json:"-"`
}
