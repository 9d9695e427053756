// Package service holds the storefront use cases: cart mutation, checkout,
// authentication, and the subscription usage gate. Services depend on small
// interfaces over the upstream clients and repositories so they stay testable
// without network or Redis.
package service

import "time"

func nowUTC() time.Time {
	return time.Now().UTC()
}
