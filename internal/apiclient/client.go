// Package apiclient is the typed client for the authenticated sales API.
// Every back-office request goes through it; it owns bearer attachment and
// the single refresh-and-retry pass on a 401 response.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httpclient"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

const upstreamName = "sales API"

var tokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_token_refresh_total",
		Help: "Upstream token refresh attempts by outcome.",
	},
	[]string{"outcome"},
)

// SessionStore is the slice of session persistence the client needs: saving
// a rotated credential pair and discarding a session whose refresh failed.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// HTTPDoer abstracts the transport so tests can drop the circuit breaker.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the sales API on behalf of back-office sessions.
type Client struct {
	baseURL  string
	http     HTTPDoer
	sessions SessionStore
}

// New creates a sales API client.
func New(baseURL string, doer HTTPDoer, sessions SessionStore) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     doer,
		sessions: sessions,
	}
}

// do executes an unauthenticated request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	resp, err := c.send(ctx, method, path, body, "")
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

// doAuthed executes a request with the session's access token. On a 401 it
// refreshes the credential pair and retries exactly once; a second 401 (or a
// failed refresh) tears the session down and reports ErrUnauthorized.
func (c *Client) doAuthed(ctx context.Context, sess *domain.Session, method, path string, body any, out any) error {
	resp, err := c.send(ctx, method, path, body, sess.AccessToken)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		if err := c.refresh(ctx, sess); err != nil {
			return err
		}

		resp, err = c.send(ctx, method, path, body, sess.AccessToken)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			c.teardown(ctx, sess)
			return apperrors.Unauthorized("session expired, please sign in again")
		}
	}

	return decodeResponse(resp, out)
}

// refresh exchanges the session's refresh token for a new credential pair and
// persists the rotation. Any failure invalidates the session.
func (c *Client) refresh(ctx context.Context, sess *domain.Session) error {
	log := logger.FromContext(ctx)

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": sess.RefreshToken,
	}, &result)
	if err != nil {
		tokenRefreshTotal.WithLabelValues("failure").Inc()
		log.Warn("token refresh failed", "session_id", sess.ID, "error", err)
		c.teardown(ctx, sess)
		return apperrors.Unauthorized("session expired, please sign in again")
	}

	sess.AccessToken = result.AccessToken
	if result.RefreshToken != "" {
		sess.RefreshToken = result.RefreshToken
	}
	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("failed to persist rotated tokens", "session_id", sess.ID, "error", err)
	}

	tokenRefreshTotal.WithLabelValues("success").Inc()
	log.Info("upstream tokens rotated", "session_id", sess.ID)
	return nil
}

// teardown discards the server-side session record so the next request is
// forced back to the login screen.
func (c *Client) teardown(ctx context.Context, sess *domain.Session) {
	if err := c.sessions.Delete(ctx, sess.ID); err != nil {
		logger.FromContext(ctx).Error("failed to delete session", "session_id", sess.ID, "error", err)
	}
}

// send builds and executes a single HTTP request. It never retries on auth
// failures; that policy belongs to doAuthed.
func (c *Client) send(ctx context.Context, method, path string, body any, accessToken string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if httpclient.IsCircuitOpen(err) {
			return nil, apperrors.Unavailable("could not reach server, please try again")
		}
		return nil, fmt.Errorf("%s request: %w", upstreamName, err)
	}
	return resp, nil
}

// decodeResponse maps a non-2xx response to an AppError and otherwise decodes
// the JSON body into out (which may be nil for empty responses).
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, upstreamName)
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", upstreamName, err)
	}
	return nil
}
