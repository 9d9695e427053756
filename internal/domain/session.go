package domain

import "time"

// Session is a back-office browser session. It references the credential
// pair issued by the sales API; the browser only ever sees the signed
// session token, never the upstream tokens.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         User      `json:"user"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}
