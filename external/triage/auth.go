package triage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anyang-health/triage-app/schema"
)

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates and persists the issued session. Login is only
// reported successful once the session is safely stored; a storage
// failure after a 200 from the server still fails the call.
func (c *Client) Login(ctx context.Context, userID, password string) (schema.Session, error) {
	if userID == "" || password == "" {
		return schema.Session{}, validationError("user id and password are required")
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, c.url(c.endpoints.Login), loginRequest{
		UserID:   userID,
		Password: password,
	}, &resp); nil != err {
		return schema.Session{}, err
	}

	if resp.AccessToken == "" {
		return schema.Session{}, &APIError{
			Kind:    KindMalformed,
			Message: "login response carries no access token",
		}
	}

	sess := schema.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       userID,
	}
	if err := c.sessions.Save(sess); nil != err {
		return schema.Session{}, fmt.Errorf("persist session: %w", err)
	}

	log.WithField("user", userID).Info("logged in")
	return sess, nil
}

// RegisterParams carries the registration form. Validate resolves the
// local checks before anything reaches the network.
type RegisterParams struct {
	UserID          string `json:"userId"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password2"`
	Nickname        string `json:"nickname"`
}

func (p RegisterParams) Validate() error {
	if p.UserID == "" {
		return validationError("user id is required")
	}
	if p.Password == "" {
		return validationError("password is required")
	}
	if p.Password != p.PasswordConfirm {
		return validationError("password confirmation does not match")
	}
	if p.Nickname == "" {
		return validationError("nickname is required")
	}
	return nil
}

// Register creates an account. A taken user id surfaces as a Conflict
// kind error.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	if err := params.Validate(); nil != err {
		return err
	}
	return c.do(ctx, http.MethodPost, c.url(c.endpoints.Register), params, nil)
}

// CheckUserIDAvailable probes GET /user/{id}: 404 means the id is free,
// 200 means it is taken.
func (c *Client) CheckUserIDAvailable(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, validationError("user id is required")
	}

	status, data, err := c.send(ctx, http.MethodGet, c.url(c.endpoints.UserProbe, userID), nil)
	if nil != err {
		return false, err
	}

	switch {
	case status == http.StatusNotFound:
		return true, nil
	case status >= 200 && status <= 299:
		return false, nil
	default:
		return false, statusError(status, serverMessage(data))
	}
}

// Logout discards the local session. The backend has no revoke call, so
// the server-side token simply ages out.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}
