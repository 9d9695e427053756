package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
	"github.com/rafascerqueira/v-storefront/pkg/validator"
)

// CartUseCase is the slice of the cart service the handler calls.
type CartUseCase interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (*domain.Cart, error)
	Prefill(ctx context.Context, sessionID, document string) (*domain.Cart, error)
}

// CartHandler serves the storefront cart endpoints. All routes run behind
// CatalogSession, which supplies the cart's session ID.
type CartHandler struct {
	carts  CartUseCase
	logger *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts CartUseCase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

// cartResponse is the cart plus its derived totals; the client never
// computes money.
type cartResponse struct {
	Cart      *domain.Cart `json:"cart"`
	Total     int64        `json:"total"`
	ItemCount int          `json:"item_count"`
}

func newCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{
		Cart:      cart,
		Total:     cart.TotalAmount(),
		ItemCount: cart.ItemCount(),
	}
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), catalogSessionFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), catalogSessionFromContext(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /cart/items/{productID}. A zero or negative
// quantity removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	var req updateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), catalogSessionFromContext(r.Context()), productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// RemoveItem handles DELETE /cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), catalogSessionFromContext(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Clear(r.Context(), catalogSessionFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

type prefillRequest struct {
	Document string `json:"document" validate:"required"`
}

// Prefill handles POST /cart/prefill: a returning customer enters a CPF or
// CNPJ and the stored profile lands on the cart for checkout pre-fill.
func (h *CartHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	var req prefillRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.Prefill(r.Context(), catalogSessionFromContext(r.Context()), req.Document)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}
