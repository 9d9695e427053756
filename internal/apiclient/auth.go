package apiclient

import (
	"context"
	"net/http"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

// LoginResult is the credential pair and identity returned by a successful
// login against the sales API.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.User
}

type authResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// Login exchanges credentials for an upstream token pair. The returned user
// may be zero-valued when the API omits it; callers follow up with Me.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}, nil
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company,omitempty"`
}

// Register creates a new account. Some deployments auto-login on register
// and return tokens; when they do, the result carries them.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}, nil
}

// Me fetches the identity behind the session's access token.
func (c *Client) Me(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	var user domain.User
	if err := c.doAuthed(ctx, sess, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the upstream token pair. Failures are logged, not returned:
// the local session is discarded either way and the user ends up signed out.
func (c *Client) Logout(ctx context.Context, sess *domain.Session) {
	err := c.doAuthed(ctx, sess, http.MethodPost, "/auth/logout", map[string]string{
		"refresh_token": sess.RefreshToken,
	}, nil)
	if err != nil {
		logger.FromContext(ctx).Warn("upstream logout failed", "session_id", sess.ID, "error", err)
	}
}
