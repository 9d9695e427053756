// Package event publishes storefront domain events to Kafka. Publishing is
// best-effort: a broker outage never fails the user-facing operation.
package event

import (
	"context"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/pkg/kafka"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

const source = "storefront"

// Event types emitted by the storefront.
const (
	TypeOrderSubmitted = "storefront.order.submitted"
	TypeCartAbandoned  = "storefront.cart.cleared"
	TypeLimitWarning   = "storefront.subscription.limit_warning"
	TypeLimitReached   = "storefront.subscription.limit_reached"
	TypeSessionStarted = "storefront.session.started"
	TypeSessionRevoked = "storefront.session.revoked"
)

// Producer is the slice of the Kafka producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Publisher emits storefront events onto the configured topic.
type Publisher struct {
	producer Producer
	topic    string
	enabled  bool
}

// NewPublisher creates an event publisher. A disabled publisher swallows all
// events, which keeps call sites unconditional.
func NewPublisher(producer Producer, topic string, enabled bool) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		enabled:  enabled,
	}
}

// publish wraps payload into the standard envelope and sends it. Errors are
// logged and dropped.
func (p *Publisher) publish(ctx context.Context, eventType, aggregateID, aggregateType string, payload any) {
	if !p.enabled || p.producer == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, payload)
	if err != nil {
		logger.FromContext(ctx).Error("failed to build event", "event_type", eventType, "error", err)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, p.topic, evt); err != nil {
		logger.FromContext(ctx).Error("failed to publish event", "event_type", eventType, "error", err)
	}
}

// OrderSubmitted reports a successful checkout.
func (p *Publisher) OrderSubmitted(ctx context.Context, sessionID string, confirmation *domain.OrderConfirmation, itemCount int) {
	p.publish(ctx, TypeOrderSubmitted, sessionID, "order", map[string]any{
		"order_number": confirmation.OrderNumber,
		"total":        confirmation.Total,
		"item_count":   itemCount,
	})
}

// CartCleared reports a cart wiped by its owner.
func (p *Publisher) CartCleared(ctx context.Context, sessionID string, itemCount int) {
	p.publish(ctx, TypeCartAbandoned, sessionID, "cart", map[string]any{
		"item_count": itemCount,
	})
}

// LimitWarning reports usage entering the warning band for a resource.
func (p *Publisher) LimitWarning(ctx context.Context, userID string, check domain.LimitCheck) {
	p.publish(ctx, TypeLimitWarning, userID, "subscription", map[string]any{
		"resource":   check.Resource,
		"percentage": check.Percentage,
		"remaining":  check.Remaining,
	})
}

// LimitReached reports a creation blocked by the usage gate.
func (p *Publisher) LimitReached(ctx context.Context, userID string, resource domain.ResourceType) {
	p.publish(ctx, TypeLimitReached, userID, "subscription", map[string]any{
		"resource": resource,
	})
}

// SessionStarted reports a back-office login.
func (p *Publisher) SessionStarted(ctx context.Context, sessionID, userID string) {
	p.publish(ctx, TypeSessionStarted, sessionID, "session", map[string]any{
		"user_id": userID,
	})
}

// SessionRevoked reports a logout or forced session teardown.
func (p *Publisher) SessionRevoked(ctx context.Context, sessionID string) {
	p.publish(ctx, TypeSessionRevoked, sessionID, "session", nil)
}
