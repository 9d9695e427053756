package domain

import (
	"math"
	"time"
)

// ResourceType identifies a plan-limited resource.
type ResourceType string

const (
	ResourceProducts  ResourceType = "products"
	ResourceOrders    ResourceType = "orders"
	ResourceCustomers ResourceType = "customers"
)

// UnlimitedLimit is the sentinel the API uses for plans without a cap.
const UnlimitedLimit = -1

// warnThreshold is the usage percentage at which the gate starts warning.
const warnThreshold = 80

// DisplayName returns the localized (pt-BR) name used in limit warnings.
func (r ResourceType) DisplayName() string {
	switch r {
	case ResourceProducts:
		return "produtos"
	case ResourceOrders:
		return "pedidos"
	case ResourceCustomers:
		return "clientes"
	default:
		return string(r)
	}
}

// ResourceUsage is one resource's position against its plan limit.
// Percentage is not clamped: a count over the limit reads above 100.
type ResourceUsage struct {
	Current    int `json:"current"`
	Limit      int `json:"limit"`
	Percentage int `json:"percentage"`
}

// UsageSnapshot is the most recently fetched usage state for an account.
// It is replaced wholesale on refresh, never patched locally.
type UsageSnapshot struct {
	Plan      Plan                           `json:"plan"`
	Resources map[ResourceType]ResourceUsage `json:"resources"`
	FetchedAt time.Time                      `json:"fetched_at"`
}

// Unlimited reports whether this resource has no cap.
func (u ResourceUsage) Unlimited() bool {
	return u.Limit == UnlimitedLimit
}

// Allowed reports whether one more resource may be created. Reaching the
// limit exactly blocks further creation.
func (u ResourceUsage) Allowed() bool {
	return u.Unlimited() || u.Current < u.Limit
}

// Remaining returns how many more resources may be created, floored at zero.
// Meaningless for unlimited plans.
func (u ResourceUsage) Remaining() int {
	if u.Unlimited() {
		return 0
	}
	if rem := u.Limit - u.Current; rem > 0 {
		return rem
	}
	return 0
}

// NearLimit reports whether usage sits in the [80, 100) percent warning band.
func (u ResourceUsage) NearLimit() bool {
	return !u.Unlimited() && u.Percentage >= warnThreshold && u.Percentage < 100
}

// UsagePercentage computes round(current/limit*100). Returns 0 for the
// unlimited sentinel or a non-positive limit.
func UsagePercentage(current, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(limit) * 100))
}

// LimitCheck is the result of consulting the usage gate for one resource.
type LimitCheck struct {
	Resource   ResourceType `json:"resource"`
	Allowed    bool         `json:"allowed"`
	Unlimited  bool         `json:"unlimited"`
	Remaining  int          `json:"remaining"`
	Percentage int          `json:"percentage"`
}
