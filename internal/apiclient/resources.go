package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

// allowedResources is the closed set of sales API collections the storefront
// proxies. Anything else is rejected before a request is built.
var allowedResources = map[string]bool{
	"products":        true,
	"customers":       true,
	"orders":          true,
	"billings":        true,
	"bundles":         true,
	"promotions":      true,
	"suppliers":       true,
	"store-stock":     true,
	"stock-movements": true,
}

// ValidResource reports whether the collection name may be proxied.
func ValidResource(resource string) bool {
	return allowedResources[resource]
}

// resourcePath builds "/products" or "/products/{id}" after the allow-list
// check. IDs are path-escaped so they cannot smuggle extra segments.
func resourcePath(resource, id string) (string, error) {
	if !ValidResource(resource) {
		return "", apperrors.NotFound("resource", resource)
	}
	path := "/" + resource
	if id != "" {
		path += "/" + url.PathEscape(id)
	}
	return path, nil
}

// ListResource proxies GET /{resource} with the caller's query string. The
// body is passed through untouched so upstream pagination envelopes survive.
func (c *Client) ListResource(ctx context.Context, sess *domain.Session, resource string, query url.Values) (json.RawMessage, error) {
	path, err := resourcePath(resource, "")
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetResource proxies GET /{resource}/{id}.
func (c *Client) GetResource(ctx context.Context, sess *domain.Session, resource, id string) (json.RawMessage, error) {
	path, err := resourcePath(resource, id)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CreateResource proxies POST /{resource}. The payload has already passed
// local validation; the upstream remains the source of truth and its
// validation errors come back verbatim.
func (c *Client) CreateResource(ctx context.Context, sess *domain.Session, resource string, payload json.RawMessage) (json.RawMessage, error) {
	path, err := resourcePath(resource, "")
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodPost, path, payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateResource proxies PUT /{resource}/{id}.
func (c *Client) UpdateResource(ctx context.Context, sess *domain.Session, resource, id string, payload json.RawMessage) (json.RawMessage, error) {
	path, err := resourcePath(resource, id)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodPut, path, payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// DeleteResource proxies DELETE /{resource}/{id}.
func (c *Client) DeleteResource(ctx context.Context, sess *domain.Session, resource, id string) error {
	path, err := resourcePath(resource, id)
	if err != nil {
		return err
	}
	return c.doAuthed(ctx, sess, http.MethodDelete, path, nil, nil)
}
