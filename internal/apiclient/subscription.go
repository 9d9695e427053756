package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rafascerqueira/v-storefront/internal/domain"
)

type subscriptionInfoResponse struct {
	Plan  domain.Plan `json:"plan"`
	Usage map[string]struct {
		Current int `json:"current"`
		Limit   int `json:"limit"`
	} `json:"usage"`
}

// SubscriptionInfo fetches the account's plan and per-resource usage counts
// and computes the derived percentages.
func (c *Client) SubscriptionInfo(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error) {
	var resp subscriptionInfoResponse
	if err := c.doAuthed(ctx, sess, http.MethodGet, "/subscriptions/info", nil, &resp); err != nil {
		return nil, err
	}

	snapshot := &domain.UsageSnapshot{
		Plan:      resp.Plan,
		Resources: make(map[domain.ResourceType]domain.ResourceUsage, len(resp.Usage)),
		FetchedAt: time.Now().UTC(),
	}
	for name, usage := range resp.Usage {
		snapshot.Resources[domain.ResourceType(name)] = domain.ResourceUsage{
			Current:    usage.Current,
			Limit:      usage.Limit,
			Percentage: domain.UsagePercentage(usage.Current, usage.Limit),
		}
	}

	return snapshot, nil
}

// Plans proxies the plan catalog for the upgrade screen.
func (c *Client) Plans(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doAuthed(ctx, sess, http.MethodGet, "/subscriptions/plans", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
