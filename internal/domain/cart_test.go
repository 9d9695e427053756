package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) CatalogProduct {
	return CatalogProduct{ID: id, Name: "Product " + id, Price: price, AvailableStock: 100}
}

// ============================================================================
// AddItem
// ============================================================================

func TestAddItem_New(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 1990), 2)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].Product.ID)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddItem_Additive(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 1990), 2)
	c.AddItem(product("p1", 1990), 3)

	// Quantities add up and the cart still holds exactly one entry for p1.
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 1)
	c.AddItem(product("p2", 200), 1)
	c.AddItem(product("p3", 300), 1)
	c.AddItem(product("p2", 200), 1)

	require.Len(t, c.Items, 3)
	assert.Equal(t, "p1", c.Items[0].Product.ID)
	assert.Equal(t, "p2", c.Items[1].Product.ID)
	assert.Equal(t, "p3", c.Items[2].Product.ID)
	assert.Equal(t, 2, c.Items[1].Quantity)
}

func TestAddItem_NonPositiveQuantityIgnored(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 0)
	c.AddItem(product("p1", 100), -1)

	assert.Empty(t, c.Items)
}

// ============================================================================
// RemoveItem / UpdateQuantity
// ============================================================================

func TestRemoveItem_RemovesRegardlessOfQuantity(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 7)
	c.RemoveItem("p1")

	assert.Equal(t, -1, c.FindItemIndex("p1"))
	assert.Empty(t, c.Items)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 1)
	c.RemoveItem("missing")

	assert.Len(t, c.Items, 1)
}

func TestUpdateQuantity_Overwrites(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 2)
	c.UpdateQuantity("p1", 9)

	// Overwrite, not additive.
	assert.Equal(t, 9, c.Items[0].Quantity)
}

func TestUpdateQuantity_FloorRemoves(t *testing.T) {
	for _, qty := range []int{0, -1, -100} {
		c := &Cart{}
		c.AddItem(product("p1", 100), 2)
		c.UpdateQuantity("p1", qty)

		assert.Equal(t, -1, c.FindItemIndex("p1"), "quantity %d should remove the item", qty)
	}
}

func TestUpdateQuantity_AbsentIsNoop(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 2)
	c.UpdateQuantity("missing", 5)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

// ============================================================================
// Derived totals
// ============================================================================

func TestTotalAmount_ExactIntegerArithmetic(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 1999), 3)
	c.AddItem(product("p2", 550), 2)

	// 5997 + 1100
	assert.Equal(t, int64(7097), c.TotalAmount())
	assert.Equal(t, 5, c.ItemCount())
}

func TestEmptyInvariant(t *testing.T) {
	c := &Cart{}
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalAmount())
	assert.Equal(t, 0, c.ItemCount())

	c.AddItem(product("p1", 100), 1)
	assert.False(t, c.IsEmpty())
	assert.NotZero(t, c.ItemCount())

	c.RemoveItem("p1")
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalAmount())
	assert.Equal(t, 0, c.ItemCount())
}

// ============================================================================
// ClearItems / SetCustomer
// ============================================================================

func TestClearItems_KeepsCustomerProfile(t *testing.T) {
	c := &Cart{}
	c.AddItem(product("p1", 100), 2)
	c.SetCustomer(&CustomerProfile{Name: "Maria Souza", Email: "maria@example.com"})

	c.ClearItems()

	assert.Empty(t, c.Items)
	require.NotNil(t, c.Customer)
	assert.Equal(t, "Maria Souza", c.Customer.Name)
}

func TestSetCustomer_NilClears(t *testing.T) {
	c := &Cart{Customer: &CustomerProfile{Name: "Maria"}}
	c.SetCustomer(nil)
	assert.Nil(t, c.Customer)
}
