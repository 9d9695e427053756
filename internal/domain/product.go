package domain

// CatalogProduct is a product as exposed by the public catalog API.
// Prices are integer minor currency units (centavos); the client never
// mutates a product within a catalog session.
type CatalogProduct struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Images         []string `json:"images,omitempty"`
	Price          int64    `json:"price"`
	AvailableStock int      `json:"available_stock"`
}

// Address holds the shipping address sub-fields collected at checkout.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// CustomerProfile is the pre-fill profile returned by the customer lookup
// endpoint for a personalized catalog link. All fields remain editable in
// the checkout form; this only streamlines a repeat purchase.
type CustomerProfile struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Document string  `json:"document"`
	Address  Address `json:"address"`
}
