package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/internal/service"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
)

// CheckoutUseCase is the slice of the checkout service the handler calls.
type CheckoutUseCase interface {
	Checkout(ctx context.Context, sessionID string, form *service.CheckoutForm) (*domain.OrderConfirmation, error)
}

// CatalogHandler serves the public storefront: product browsing and
// checkout. Both run behind CatalogSession.
type CatalogHandler struct {
	catalog  service.Catalog
	checkout CheckoutUseCase
	logger   *slog.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(catalog service.Catalog, checkout CheckoutUseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		checkout: checkout,
		logger:   logger,
	}
}

// ListProducts handles GET /catalog/products. Search and category filters
// pass through to the catalog API.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context(), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetProduct handles GET /catalog/products/{productID}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Product(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Checkout handles POST /checkout.
func (h *CatalogHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	// The form is decoded raw here; normalization and validation happen
	// inside the service so formatted documents still pass.
	var form service.CheckoutForm
	if err := decodeJSON(r, &form); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	confirmation, err := h.checkout.Checkout(r.Context(), catalogSessionFromContext(r.Context()), &form)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: confirmation})
}
