package triage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anyang-health/triage-app/schema"
)

// HospitalDetail fetches one hospital by id. The user coordinate, when
// known, is passed along so the server can compute its own distance; the
// client still re-derives the displayed one.
func (c *Client) HospitalDetail(ctx context.Context, id string, at *schema.Coordinate) (schema.Hospital, error) {
	if id == "" {
		return schema.Hospital{}, validationError("hospital id is required")
	}

	u := c.url(c.endpoints.HospitalDetail, url.PathEscape(id))
	if at != nil {
		q := url.Values{}
		q.Set("latitude", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
		q.Set("longitude", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
		u += "?" + q.Encode()
	}

	status, data, err := c.send(ctx, http.MethodGet, u, nil)
	if nil != err {
		return schema.Hospital{}, err
	}
	if status < 200 || status > 299 {
		return schema.Hospital{}, statusError(status, serverMessage(data))
	}

	payload, err := decodeDetail(data)
	if nil != err {
		return schema.Hospital{}, &APIError{
			Kind:       KindMalformed,
			StatusCode: status,
			Message:    err.Error(),
		}
	}

	h := payload.normalize()
	if h.ID == "" {
		h.ID = id
	}
	return h, nil
}

// decodeDetail accepts both a bare hospital object and one wrapped under
// a "data" key.
func decodeDetail(data []byte) (hospitalPayload, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		data = envelope.Data
	}

	var payload hospitalPayload
	if err := json.Unmarshal(data, &payload); nil != err {
		return hospitalPayload{}, err
	}
	return payload, nil
}
