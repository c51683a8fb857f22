package triage

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/anyang-health/triage-app/schema"
)

type recommendRequest struct {
	Symptom   string  `json:"symptom"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// recommendResponse accepts both envelope shapes the backend has shipped:
// the hospital array is under "data" in one revision and under
// "recommendations" in another.
type recommendResponse struct {
	Data            []hospitalPayload `json:"data"`
	Recommendations []hospitalPayload `json:"recommendations"`
}

// hospitalPayload tolerates the field aliases observed across backend
// revisions and folds them into the canonical schema.Hospital once.
type hospitalPayload struct {
	ID              interface{} `json:"id"`
	Name            string      `json:"name"`
	Address         string      `json:"address"`
	BusinessHours   string      `json:"businessHours"`
	Hours           string      `json:"hours"`
	OperatingStatus string      `json:"operatingStatus"`
	Status          string      `json:"status"`
	Specialties     []string    `json:"specialties"`
	Department      string      `json:"department"`
	Phone           string      `json:"phone"`
	Tel             string      `json:"tel"`
	Reason          string      `json:"recommendationReason"`
	ReasonAlt       string      `json:"reason"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Y         *float64 `json:"y"`
	X         *float64 `json:"x"`
}

func (p hospitalPayload) normalize() schema.Hospital {
	h := schema.Hospital{
		ID:                   normalizeID(p.ID),
		Name:                 p.Name,
		Address:              p.Address,
		BusinessHours:        firstNonEmpty(p.BusinessHours, p.Hours),
		OperatingStatus:      firstNonEmpty(p.OperatingStatus, p.Status),
		Specialties:          p.Specialties,
		Phone:                firstNonEmpty(p.Phone, p.Tel),
		RecommendationReason: firstNonEmpty(p.Reason, p.ReasonAlt),
	}

	if len(h.Specialties) == 0 && p.Department != "" {
		h.Specialties = []string{p.Department}
	}

	lat := firstFloat(p.Latitude, p.Lat, p.Y)
	lng := firstFloat(p.Longitude, p.Lng, p.X)
	if lat != nil && lng != nil {
		c := schema.Coordinate{
			Latitude:  *lat,
			Longitude: *lng,
		}
		if c.Valid() {
			h.Coordinate = &c
		}
	}

	// Server-given distances are deliberately dropped; the display
	// ordering is always re-derived from the current user coordinate.
	return h
}

// Recommend posts the symptom query and returns the normalized hospital
// list. An empty or absent result array is an empty list, never an
// error.
func (c *Client) Recommend(ctx context.Context, query schema.SymptomQuery) ([]schema.Hospital, error) {
	if query.Symptom == "" {
		return nil, validationError("symptom text is required")
	}
	if !query.Coordinate.Valid() {
		return nil, validationError("a valid coordinate is required")
	}

	var resp recommendResponse
	if err := c.do(ctx, http.MethodPost, c.url(c.endpoints.Recommend), recommendRequest{
		Symptom:   query.Symptom,
		Latitude:  query.Coordinate.Latitude,
		Longitude: query.Coordinate.Longitude,
	}, &resp); nil != err {
		return nil, err
	}

	payloads := resp.Data
	if payloads == nil {
		payloads = resp.Recommendations
	}

	hospitals := make([]schema.Hospital, 0, len(payloads))
	for _, p := range payloads {
		hospitals = append(hospitals, p.normalize())
	}

	log.WithField("count", len(hospitals)).Info("received hospital recommendations")
	return hospitals, nil
}

func normalizeID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
