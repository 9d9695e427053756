package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rafascerqueira/v-storefront/internal/domain"
)

// Admin endpoints are raw passthroughs; the storefront only gates access by
// role and never reshapes the payloads.

// AdminStats proxies GET /admin/stats.
func (c *Client) AdminStats(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, "/admin/stats", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AdminActiveUsers proxies GET /admin/active-users.
func (c *Client) AdminActiveUsers(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, "/admin/active-users", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AdminAccounts proxies GET /admin/accounts with the caller's query string.
func (c *Client) AdminAccounts(ctx context.Context, sess *domain.Session, query url.Values) (json.RawMessage, error) {
	path := "/admin/accounts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AdminLogs proxies GET /admin/logs with the caller's query string.
func (c *Client) AdminLogs(ctx context.Context, sess *domain.Session, query url.Values) (json.RawMessage, error) {
	path := "/admin/logs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AdminHealth proxies GET /admin/health.
func (c *Client) AdminHealth(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, "/admin/health", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
