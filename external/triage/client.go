package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anyang-health/triage-app/session"
)

const logPrefix = "triage"

var log = logrus.WithField("prefix", logPrefix)

// Endpoints collects every backend path in one place. The paths have
// drifted between backend revisions, so nothing outside this table may
// inline a URL.
type Endpoints struct {
	Login          string
	Register       string
	UserProbe      string
	Recommend      string
	HospitalDetail string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:          "/login",
		Register:       "/register",
		UserProbe:      "/user",
		Recommend:      "/hospitals/recommend",
		HospitalDetail: "/hospitals",
	}
}

// Client talks to the triage backend. Every request goes through a
// transport that attaches the stored bearer token, so callers never
// handle the token themselves.
type Client struct {
	baseURL   string
	endpoints Endpoints
	client    *http.Client
	sessions  session.Store
}

// NewClient wraps httpClient's transport with bearer injection backed by
// the session store. A nil httpClient gets a 10 second default.
func NewClient(baseURL string, endpoints Endpoints, sessions session.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	authed := *httpClient
	next := httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	authed.Transport = &authTransport{
		next:     next,
		sessions: sessions,
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &authed,
		sessions:  sessions,
	}
}

// authTransport reads the session store on every request and attaches
// Authorization: Bearer <token> when a token is present. Requests go out
// unauthenticated otherwise; rejecting them is the server's job.
type authTransport struct {
	next     http.RoundTripper
	sessions session.Store
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	sess, err := t.sessions.Read()
	if (err == nil || err == session.ErrSessionExpired) && sess.AccessToken != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}
	return t.next.RoundTrip(req)
}

func (c *Client) url(path string, segments ...string) string {
	u := c.baseURL + path
	for _, s := range segments {
		u = strings.TrimRight(u, "/") + "/" + s
	}
	return u
}

// send performs one request and hands back the status and raw body.
// Transport failures come back as unreachable errors; status mapping is
// the caller's concern.
func (c *Client) send(ctx context.Context, method, url string, body interface{}) (int, []byte, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if nil != err {
			return 0, nil, err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if nil != err {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if nil != err {
		log.WithFields(logrus.Fields{
			"method": method,
			"url":    url,
			"error":  err,
		}).Warn("request did not reach the server")
		return 0, nil, &APIError{
			Kind:    KindUnreachable,
			Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		return resp.StatusCode, nil, &APIError{
			Kind:       KindUnreachable,
			StatusCode: resp.StatusCode,
			Message:    err.Error(),
		}
	}

	return resp.StatusCode, data, nil
}

// do sends a request, maps non-2xx statuses to the error taxonomy and
// unmarshals a successful body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	status, data, err := c.send(ctx, method, url, body)
	if nil != err {
		return err
	}

	if status < 200 || status > 299 {
		return statusError(status, serverMessage(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); nil != err {
			return &APIError{
				Kind:       KindMalformed,
				StatusCode: status,
				Message:    err.Error(),
			}
		}
	}
	return nil
}

// serverMessage pulls a human-readable message out of an error body,
// tolerating the two envelope spellings the backend has used.
func serverMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return ""
}
