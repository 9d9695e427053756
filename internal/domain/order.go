package domain

import "strings"

// OrderCustomer is the normalized customer payload sent with an order.
// Phone, document, and postal code carry digits only; state is the
// upper-cased two-letter code.
type OrderCustomer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Document   string `json:"document"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// OrderLine is one (product, quantity) line of an order, in cart order.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the payload for the public order-creation endpoint.
type OrderRequest struct {
	Customer OrderCustomer `json:"customer"`
	Items    []OrderLine   `json:"items"`
	Notes    string        `json:"notes,omitempty"`
}

// OrderConfirmation carries the server-assigned order number back to the UI.
type OrderConfirmation struct {
	OrderNumber string `json:"order_number"`
	Total       int64  `json:"total,omitempty"`
	Status      string `json:"status,omitempty"`
}

// NormalizeState upper-cases and trims a two-letter state code.
func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

// OrderLinesFromCart builds the order lines preserving cart insertion order.
func OrderLinesFromCart(cart *Cart) []OrderLine {
	lines := make([]OrderLine, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = OrderLine{ProductID: item.Product.ID, Quantity: item.Quantity}
	}
	return lines
}
