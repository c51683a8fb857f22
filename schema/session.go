package schema

import "time"

// Session holds the tokens issued at login or registration. A session is
// replaced wholesale on re-login and deleted on logout; it is never
// mutated in place.
type Session struct {
	AccessToken  string    `msgpack:"access_token" json:"accessToken"`
	RefreshToken string    `msgpack:"refresh_token,omitempty" json:"refreshToken,omitempty"`
	UserID       string    `msgpack:"user_id,omitempty" json:"userId,omitempty"`
	SavedAt      time.Time `msgpack:"saved_at" json:"savedAt"`

	// ExpiresAt is taken from the access token's registered expiry claim
	// when the token is a parseable JWT; zero otherwise.
	ExpiresAt time.Time `msgpack:"expires_at,omitempty" json:"expiresAt,omitempty"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
