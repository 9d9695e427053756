package service

import (
	"context"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/internal/repository"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

// UsageFetcher fetches the account's usage snapshot from the sales API.
type UsageFetcher interface {
	SubscriptionInfo(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error)
}

// LimitEvents is the slice of the event publisher the gate emits on.
type LimitEvents interface {
	LimitWarning(ctx context.Context, userID string, check domain.LimitCheck)
	LimitReached(ctx context.Context, userID string, resource domain.ResourceType)
}

// SubscriptionService is the usage gate. It caches the last fetched snapshot
// and refreshes it after any create, so the gate tracks upstream counts with
// at most one mutation of lag.
type SubscriptionService struct {
	api    UsageFetcher
	usage  repository.UsageRepository
	events LimitEvents
}

// NewSubscriptionService creates a subscription usage service.
func NewSubscriptionService(api UsageFetcher, usage repository.UsageRepository, events LimitEvents) *SubscriptionService {
	return &SubscriptionService{
		api:    api,
		usage:  usage,
		events: events,
	}
}

// Refresh fetches a fresh snapshot and replaces the cached one wholesale.
func (s *SubscriptionService) Refresh(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error) {
	snapshot, err := s.api.SubscriptionInfo(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.usage.Save(ctx, sess.User.ID, snapshot); err != nil {
		logger.FromContext(ctx).Error("failed to cache usage snapshot", "user_id", sess.User.ID, "error", err)
	}
	return snapshot, nil
}

// Snapshot returns the cached snapshot, fetching one when the cache is cold.
func (s *SubscriptionService) Snapshot(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error) {
	snapshot, err := s.usage.Get(ctx, sess.User.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return s.Refresh(ctx, sess)
		}
		return nil, err
	}
	return snapshot, nil
}

// CheckLimit consults the gate for one resource. A resource the snapshot
// does not track is allowed; the upstream remains the enforcement of last
// resort. Entering the warning band emits a warning event on every check so
// the UI can keep nudging until the user upgrades or trims usage.
func (s *SubscriptionService) CheckLimit(ctx context.Context, sess *domain.Session, resource domain.ResourceType) (domain.LimitCheck, error) {
	snapshot, err := s.Snapshot(ctx, sess)
	if err != nil {
		return domain.LimitCheck{}, err
	}

	usage, ok := snapshot.Resources[resource]
	if !ok {
		logger.FromContext(ctx).Warn("usage snapshot missing resource", "resource", resource)
		return domain.LimitCheck{Resource: resource, Allowed: true, Unlimited: true}, nil
	}

	check := domain.LimitCheck{
		Resource:   resource,
		Allowed:    usage.Allowed(),
		Unlimited:  usage.Unlimited(),
		Remaining:  usage.Remaining(),
		Percentage: usage.Percentage,
	}

	if s.events != nil {
		if !check.Allowed {
			s.events.LimitReached(ctx, sess.User.ID, resource)
		} else if usage.NearLimit() {
			s.events.LimitWarning(ctx, sess.User.ID, check)
		}
	}

	return check, nil
}

// Gate is CheckLimit collapsed to an error: nil when creation may proceed,
// a LIMIT_REACHED error when the plan is at capacity.
func (s *SubscriptionService) Gate(ctx context.Context, sess *domain.Session, resource domain.ResourceType) error {
	check, err := s.CheckLimit(ctx, sess, resource)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return apperrors.LimitReached(resource.DisplayName())
	}
	return nil
}
