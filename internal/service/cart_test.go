package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

func cartFixtureProduct() *domain.CatalogProduct {
	return &domain.CatalogProduct{
		ID:             "p1",
		Name:           "Café Torrado 500g",
		Price:          2490,
		AvailableStock: 5,
	}
}

func TestCartService_GetReturnsEmptyCartWhenAbsent(t *testing.T) {
	svc := NewCartService(newMemCartRepo(), &mockCatalog{}, nil)

	cart, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "sess-1", cart.ID)
}

func TestCartService_AddItemPersistsMerge(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Product", mock.Anything, "p1").Return(cartFixtureProduct(), nil)

	repo := newMemCartRepo()
	svc := NewCartService(repo, catalog, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	stored, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestCartService_AddItemRejectsOverStock(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Product", mock.Anything, "p1").Return(cartFixtureProduct(), nil)

	svc := NewCartService(newMemCartRepo(), catalog, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)

	// 4 in cart + 2 requested > 5 available
	_, err = svc.AddItem(ctx, "sess-1", "p1", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrOutOfStock)

	// the failed add must not change the cart
	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 4, cart.ItemCount())
}

func TestCartService_AddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(newMemCartRepo(), &mockCatalog{}, nil)

	_, err := svc.AddItem(context.Background(), "sess-1", "p1", 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_AddItemUnknownProduct(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Product", mock.Anything, "ghost").Return(nil, apperrors.NotFound("product", "ghost"))

	svc := NewCartService(newMemCartRepo(), catalog, nil)

	_, err := svc.AddItem(context.Background(), "sess-1", "ghost", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_UpdateQuantityFloorsToRemoval(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Product", mock.Anything, "p1").Return(cartFixtureProduct(), nil)

	svc := NewCartService(newMemCartRepo(), catalog, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", "p1", 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_UpdateQuantityOverStock(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Product", mock.Anything, "p1").Return(cartFixtureProduct(), nil)

	svc := NewCartService(newMemCartRepo(), catalog, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "sess-1", "p1", 6)
	assert.ErrorIs(t, err, apperrors.ErrOutOfStock)
}

func TestCartService_RemoveAbsentProductIsNoOp(t *testing.T) {
	svc := NewCartService(newMemCartRepo(), &mockCatalog{}, nil)

	cart, err := svc.RemoveItem(context.Background(), "sess-1", "ghost")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_ClearKeepsCustomerAndEmitsEvent(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("Product", mock.Anything, "p1").Return(cartFixtureProduct(), nil)

	repo := newMemCartRepo()
	events := &recordingEvents{}
	svc := NewCartService(repo, catalog, events)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)

	stored, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	stored.SetCustomer(&domain.CustomerProfile{Name: "João Silva", Document: "11144477735"})
	require.NoError(t, repo.Save(ctx, stored))

	cart, err := svc.Clear(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	require.NotNil(t, cart.Customer)
	assert.Equal(t, "João Silva", cart.Customer.Name)
	assert.Equal(t, []string{"sess-1"}, events.cartsCleared)
}

func TestCartService_ClearEmptyCartEmitsNothing(t *testing.T) {
	events := &recordingEvents{}
	svc := NewCartService(newMemCartRepo(), &mockCatalog{}, events)

	_, err := svc.Clear(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, events.cartsCleared)
}

func TestCartService_Prefill(t *testing.T) {
	catalog := &mockCatalog{}
	catalog.On("CustomerByDocument", mock.Anything, "11144477735").Return(&domain.CustomerProfile{
		ID:       "c1",
		Name:     "João Silva",
		Document: "11144477735",
	}, nil)

	svc := NewCartService(newMemCartRepo(), catalog, nil)

	// formatted input is cleaned before the lookup
	cart, err := svc.Prefill(context.Background(), "sess-1", "111.444.777-35")
	require.NoError(t, err)
	require.NotNil(t, cart.Customer)
	assert.Equal(t, "c1", cart.Customer.ID)
}

func TestCartService_PrefillInvalidDocument(t *testing.T) {
	svc := NewCartService(newMemCartRepo(), &mockCatalog{}, nil)

	_, err := svc.Prefill(context.Background(), "sess-1", "12345678900")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
