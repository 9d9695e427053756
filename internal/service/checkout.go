package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/internal/repository"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
	"github.com/rafascerqueira/v-storefront/pkg/validator"
)

// CheckoutForm is the customer data collected at checkout. Validation runs
// after normalization so formatted documents and lowercase state codes pass.
type CheckoutForm struct {
	Name       string `json:"name" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10"`
	Document   string `json:"document" validate:"required,brdoc"`
	Street     string `json:"street" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Complement string `json:"complement"`
	District   string `json:"district" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required,len=2"`
	PostalCode string `json:"postal_code" validate:"required,len=8"`
	Notes      string `json:"notes"`
}

// Normalize cleans the free-form fields in place: documents, phones, and
// postal codes keep digits only, the state code is upper-cased.
func (f *CheckoutForm) Normalize() {
	f.Document = domain.OnlyDigits(f.Document)
	f.Phone = domain.OnlyDigits(f.Phone)
	f.PostalCode = domain.OnlyDigits(f.PostalCode)
	f.State = domain.NormalizeState(f.State)
}

// CheckoutEvents is the slice of the event publisher checkout emits on.
type CheckoutEvents interface {
	OrderSubmitted(ctx context.Context, sessionID string, confirmation *domain.OrderConfirmation, itemCount int)
}

// CheckoutService finalizes a cart into an order against the catalog API.
type CheckoutService struct {
	carts   repository.CartRepository
	catalog Catalog
	events  CheckoutEvents
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(carts repository.CartRepository, catalog Catalog, events CheckoutEvents) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		catalog: catalog,
		events:  events,
	}
}

// Checkout validates the form, submits the order, and clears the cart on
// success. An empty cart is rejected locally before any network call. On
// failure the cart (and its idempotency key) is left untouched so the
// customer can retry without creating a duplicate order.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, form *CheckoutForm) (*domain.OrderConfirmation, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.CartEmpty()
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.CartEmpty()
	}

	form.Normalize()
	if err := validator.Validate(form); err != nil {
		return nil, err
	}

	// The key survives failed attempts so a retry after a timeout replays the
	// same submission instead of creating a second order.
	if cart.IdempotencyKey == "" {
		cart.IdempotencyKey = uuid.New().String()
		cart.UpdatedAt = nowUTC()
		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, err
		}
	}

	order := &domain.OrderRequest{
		Customer: domain.OrderCustomer{
			Name:       form.Name,
			Email:      form.Email,
			Phone:      form.Phone,
			Document:   form.Document,
			Street:     form.Street,
			Number:     form.Number,
			Complement: form.Complement,
			District:   form.District,
			City:       form.City,
			State:      form.State,
			PostalCode: form.PostalCode,
		},
		Items: domain.OrderLinesFromCart(cart),
		Notes: form.Notes,
	}

	itemCount := cart.ItemCount()
	confirmation, err := s.catalog.SubmitOrder(ctx, order, cart.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	// Success: empty the cart and rotate the key. The stored customer profile
	// is left as-is; the submitted form only shapes the order, never the
	// pre-fill record.
	cart.ClearItems()
	cart.IdempotencyKey = ""
	cart.UpdatedAt = nowUTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		logger.FromContext(ctx).Error("failed to clear cart after checkout",
			"session_id", sessionID, "order_number", confirmation.OrderNumber, "error", err)
	}

	if s.events != nil {
		s.events.OrderSubmitted(ctx, sessionID, confirmation, itemCount)
	}

	return confirmation, nil
}
