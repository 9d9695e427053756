package service

import (
	"context"
	"net/url"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/internal/repository"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

// Catalog is the slice of the public catalog API the storefront services use.
type Catalog interface {
	Products(ctx context.Context, query url.Values) ([]domain.CatalogProduct, error)
	Product(ctx context.Context, id string) (*domain.CatalogProduct, error)
	CustomerByDocument(ctx context.Context, document string) (*domain.CustomerProfile, error)
	SubmitOrder(ctx context.Context, order *domain.OrderRequest, idempotencyKey string) (*domain.OrderConfirmation, error)
}

// CartEvents is the slice of the event publisher the cart service emits on.
type CartEvents interface {
	CartCleared(ctx context.Context, sessionID string, itemCount int)
}

// CartService owns all cart mutations. Every mutation is load-modify-save
// against the session's single cart record; the catalog API supplies fresh
// product snapshots on add.
type CartService struct {
	carts   repository.CartRepository
	catalog Catalog
	events  CartEvents
}

// NewCartService creates a cart service.
func NewCartService(carts repository.CartRepository, catalog Catalog, events CartEvents) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		events:  events,
	}
}

// Get returns the session's cart, or a fresh empty cart when none exists.
// The empty cart is not persisted until the first mutation.
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domain.NewCart(sessionID), nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem fetches the product from the catalog and merges the quantity into
// the cart. The resulting line quantity must fit the advertised stock.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be positive")
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	existing := 0
	if i := cart.FindItemIndex(productID); i >= 0 {
		existing = cart.Items[i].Quantity
	}
	if existing+quantity > product.AvailableStock {
		return nil, apperrors.OutOfStock(product.Name, product.AvailableStock)
	}

	cart.AddItem(*product, quantity)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity overwrites a line's quantity. Zero or negative removes the
// line; updating an absent product changes nothing.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity > 0 {
		if i := cart.FindItemIndex(productID); i >= 0 {
			available := cart.Items[i].Product.AvailableStock
			if quantity > available {
				return nil, apperrors.OutOfStock(cart.Items[i].Product.Name, available)
			}
		}
	}

	cart.UpdateQuantity(productID, quantity)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes a line regardless of quantity. Absent products are a
// no-op so double-clicks and stale UIs stay harmless.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart but keeps the stored customer profile.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cleared := cart.ItemCount()
	cart.ClearItems()
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	if cleared > 0 && s.events != nil {
		s.events.CartCleared(ctx, sessionID, cleared)
	}
	return cart, nil
}

// Prefill looks up a returning customer by document and stores the profile
// on the cart for checkout pre-fill.
func (s *CartService) Prefill(ctx context.Context, sessionID, document string) (*domain.Cart, error) {
	cleaned := domain.OnlyDigits(document)
	if !domain.IsValidDocument(cleaned) {
		return nil, apperrors.InvalidInput("document must be a valid CPF or CNPJ")
	}

	profile, err := s.catalog.CustomerByDocument(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetCustomer(profile)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = nowUTC()
	return s.carts.Save(ctx, cart)
}
