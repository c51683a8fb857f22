package schema

// SymptomQuery is the free-text symptom a user typed in the chat step
// together with the position fix captured at submit time. It is consumed
// exactly once, by the recommendation request, and never persisted.
type SymptomQuery struct {
	Symptom    string     `json:"symptom"`
	Coordinate Coordinate `json:"coordinate"`
}

// BodyRegion tags the body part selected in the first wizard step.
type BodyRegion string

const (
	RegionHead  BodyRegion = "head"
	RegionTrunk BodyRegion = "trunk"
	RegionHand  BodyRegion = "hand"
	RegionFoot  BodyRegion = "foot"
)

func BodyRegions() []BodyRegion {
	return []BodyRegion{RegionHead, RegionTrunk, RegionHand, RegionFoot}
}

func (r BodyRegion) Valid() bool {
	switch r {
	case RegionHead, RegionTrunk, RegionHand, RegionFoot:
		return true
	}
	return false
}
