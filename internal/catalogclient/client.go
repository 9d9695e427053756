// Package catalogclient is the client for the anonymous public catalog API:
// product browsing, customer profile lookup, and order submission.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httpclient"
)

const upstreamName = "catalog API"

// HTTPDoer abstracts the transport so tests can drop the circuit breaker.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the public catalog API.
type Client struct {
	baseURL string
	http    HTTPDoer
}

// New creates a catalog API client.
func New(baseURL string, doer HTTPDoer) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
	}
}

// Products lists the published catalog. The query passes through search and
// category filters untouched.
func (c *Client) Products(ctx context.Context, query url.Values) ([]domain.CatalogProduct, error) {
	path := "/catalog/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var products []domain.CatalogProduct
	if err := c.get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalog product.
func (c *Client) Product(ctx context.Context, id string) (*domain.CatalogProduct, error) {
	var product domain.CatalogProduct
	if err := c.get(ctx, "/catalog/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CustomerByDocument looks up a returning customer's profile by CPF/CNPJ for
// checkout pre-fill. The document must already be cleaned to digits.
func (c *Client) CustomerByDocument(ctx context.Context, document string) (*domain.CustomerProfile, error) {
	var profile domain.CustomerProfile
	err := c.get(ctx, "/catalog/customers/"+url.PathEscape(document), &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SubmitOrder posts a finalized order. The idempotency key makes retried
// submissions after a timeout safe: the API returns the original order
// instead of creating a duplicate.
func (c *Client) SubmitOrder(ctx context.Context, order *domain.OrderRequest, idempotencyKey string) (*domain.OrderConfirmation, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/catalog/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if httpclient.IsCircuitOpen(err) {
			return nil, apperrors.Unavailable("could not reach server, please try again")
		}
		return nil, fmt.Errorf("%s request: %w", upstreamName, err)
	}

	var confirmation domain.OrderConfirmation
	if err := decodeResponse(resp, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if httpclient.IsCircuitOpen(err) {
			return apperrors.Unavailable("could not reach server, please try again")
		}
		return fmt.Errorf("%s request: %w", upstreamName, err)
	}
	return decodeResponse(resp, out)
}

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
