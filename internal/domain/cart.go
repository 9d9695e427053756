package domain

import "time"

// Cart holds the items a customer intends to purchase during a single
// catalog session, plus the optional pre-fill customer profile. Item order
// is insertion order and defines the checkout line order.
type Cart struct {
	ID             string           `json:"id"`
	Items          []CartItem       `json:"items"`
	Customer       *CustomerProfile `json:"customer,omitempty"`
	IdempotencyKey string           `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	ExpiresAt      time.Time        `json:"expires_at"`
}

// CartItem is a (product, quantity) pair. Quantity is always >= 1; an item
// that would drop to zero is removed instead.
type CartItem struct {
	Product  CatalogProduct `json:"product"`
	Quantity int            `json:"quantity"`
}

// NewCart creates an empty cart bound to a catalog session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        sessionID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalAmount computes the cart total in minor currency units. It is always
// recomputed from the current items, never cached, so it cannot drift.
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total quantity across all items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the item for the given product ID, or
// -1 when absent. At most one item per product ID exists in a cart.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges the given quantity into an existing item for the same
// product, or appends a new item. Quantities are additive. Stock checks are
// the caller's responsibility; this only maintains the collection invariants.
func (c *Cart) AddItem(product CatalogProduct, quantity int) {
	if quantity <= 0 {
		return
	}
	if i := c.FindItemIndex(product.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		// Refresh the product snapshot in case price or stock changed.
		c.Items[i].Product = product
		return
	}
	c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
}

// RemoveItem deletes the item for the given product ID regardless of its
// quantity. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	if i := c.FindItemIndex(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity overwrites the item's quantity with the exact given value.
// A quantity <= 0 behaves as RemoveItem. Updating an absent product is a
// no-op beyond the removal branch.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	if i := c.FindItemIndex(productID); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// ClearItems empties the item collection. The stored customer profile is
// kept so a repeat visit still pre-fills the checkout form.
func (c *Cart) ClearItems() {
	c.Items = []CartItem{}
}

// SetCustomer replaces the pre-fill profile wholesale; nil clears it.
func (c *Cart) SetCustomer(profile *CustomerProfile) {
	c.Customer = profile
}
