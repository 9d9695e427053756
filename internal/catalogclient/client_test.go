package catalogclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = 5 * time.Second

	return New(srv.URL, httpclient.New(cfg))
}

func TestClient_Products(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/catalog/products", r.URL.Path)
		assert.Equal(t, "café", r.URL.Query().Get("search"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "p1", "name": "Café Torrado 500g", "price": 2490, "available_stock": 12},
		})
	}))

	products, err := client.Products(context.Background(), url.Values{"search": {"café"}})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(2490), products[0].Price)
	assert.Equal(t, 12, products[0].AvailableStock)
}

func TestClient_ProductNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "NOT_FOUND", "message": "product not found"},
		})
	}))

	_, err := client.Product(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_CustomerByDocument(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/catalog/customers/11144477735", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "c1", "name": "João Silva", "document": "11144477735",
		})
	}))

	profile, err := client.CustomerByDocument(context.Background(), "11144477735")
	require.NoError(t, err)
	assert.Equal(t, "João Silva", profile.Name)
}

func TestClient_SubmitOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/catalog/orders", r.URL.Path)
		assert.Equal(t, "idem-key-1", r.Header.Get("Idempotency-Key"))

		var order domain.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		require.Len(t, order.Items, 2)
		assert.Equal(t, "p1", order.Items[0].ProductID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"order_number": "ORD-1042", "total": 7470, "status": "received",
		})
	}))

	order := &domain.OrderRequest{
		Customer: domain.OrderCustomer{Name: "João Silva", Document: "11144477735"},
		Items: []domain.OrderLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}

	confirmation, err := client.SubmitOrder(context.Background(), order, "idem-key-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1042", confirmation.OrderNumber)
	assert.Equal(t, int64(7470), confirmation.Total)
}

func TestClient_SubmitOrderOutOfStock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "OUT_OF_STOCK", "message": "Café Torrado 500g has only 1 unit left"},
		})
	}))

	_, err := client.SubmitOrder(context.Background(), &domain.OrderRequest{}, "idem-key-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "only 1 unit left")
}
