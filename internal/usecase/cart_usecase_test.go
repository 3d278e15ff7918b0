package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestCartAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adding twice increments quantity", func(t *testing.T) {
		env := newTestEnv(t)

		first, err := env.cart.Add(ctx, env.sessionID, 2)
		require.NoError(t, err)
		assert.False(t, first.Updated)

		second, err := env.cart.Add(ctx, env.sessionID, 2)
		require.NoError(t, err)
		assert.True(t, second.Updated)

		view, err := env.cart.View(ctx, env.sessionID)
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 2, view.Lines[0].Quantity)
		assert.Equal(t, 2, view.Totals.ItemCount)
		assert.Equal(t, 2, env.metrics.added)
	})

	t.Run("out of stock leaves cart unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.cart.Add(ctx, env.sessionID, 1)
		require.NoError(t, err)

		_, err = env.admin.SetStock(ctx, testAdmin, 4, 0)
		require.NoError(t, err)

		_, err = env.cart.Add(ctx, env.sessionID, 4)
		assert.ErrorIs(t, err, entity.ErrOutOfStock)

		view, _ := env.cart.View(ctx, env.sessionID)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 1, view.Lines[0].Product.ID)
		assert.Equal(t, 1, env.metrics.outOfStock)
	})

	t.Run("unknown product", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.cart.Add(ctx, env.sessionID, 404)
		assert.ErrorIs(t, err, entity.ErrProductNotFound)
	})

	t.Run("cart keeps the snapshot taken at add time", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.cart.Add(ctx, env.sessionID, 7)
		require.NoError(t, err)
		require.NoError(t, env.admin.DeleteProduct(ctx, testAdmin, 7))

		view, err := env.cart.View(ctx, env.sessionID)
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, "Alternator 120A", view.Lines[0].Product.Name)
	})
}

func TestCartQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.cart.Add(ctx, env.sessionID, 1)
	require.NoError(t, err)

	view, err := env.cart.UpdateQuantity(ctx, env.sessionID, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	view, err = env.cart.UpdateQuantity(ctx, env.sessionID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Lines[0].Quantity, "quantity below 1 is ignored")

	_, err = env.cart.UpdateQuantity(ctx, env.sessionID, 3, 2)
	assert.ErrorIs(t, err, entity.ErrCartLineNotFound)

	_, err = env.cart.Remove(ctx, env.sessionID, -1)
	assert.ErrorIs(t, err, entity.ErrCartLineNotFound)

	view, err = env.cart.Remove(ctx, env.sessionID, 0)
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Totals.Total)
}

func TestComputeTotals(t *testing.T) {
	brake := entity.Product{ID: 1, Price: 45.99}
	oil := entity.Product{ID: 2, Price: 32.50}

	t.Run("tax and total", func(t *testing.T) {
		totals := ComputeTotals([]entity.CartLine{{Product: brake, Quantity: 2}, {Product: oil, Quantity: 1}}, 0.08)
		assert.InDelta(t, 124.48, totals.Subtotal, 1e-9)
		assert.InDelta(t, 9.9584, totals.Tax, 1e-9)
		assert.InDelta(t, 134.4384, totals.Total, 1e-9)
		assert.Equal(t, 3, totals.ItemCount)
	})

	t.Run("linear in quantities", func(t *testing.T) {
		one := ComputeTotals([]entity.CartLine{{Product: brake, Quantity: 1}, {Product: oil, Quantity: 3}}, 0.08)
		for _, k := range []int{2, 5, 11} {
			scaled := ComputeTotals([]entity.CartLine{{Product: brake, Quantity: k}, {Product: oil, Quantity: 3 * k}}, 0.08)
			assert.InDelta(t, one.Subtotal*float64(k), scaled.Subtotal, 1e-9)
			assert.InDelta(t, one.Tax*float64(k), scaled.Tax, 1e-9)
			assert.InDelta(t, one.Total*float64(k), scaled.Total, 1e-9)
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, entity.Totals{}, ComputeTotals(nil, 0.08))
	})
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	address := entity.ShippingAddress{Street: "12 Ring Road", City: "Accra", Zip: "00233"}

	t.Run("login required", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.cart.Add(ctx, env.sessionID, 1)
		require.NoError(t, err)

		_, err = env.cart.PlaceOrder(ctx, env.sessionID, address)
		assert.ErrorIs(t, err, entity.ErrLoginRequired)

		view, _ := env.cart.View(ctx, env.sessionID)
		assert.Len(t, view.Lines, 1)
	})

	t.Run("empty cart", func(t *testing.T) {
		env := newTestEnv(t)
		env.login(t, "jane@example.com")

		_, err := env.cart.PlaceOrder(ctx, env.sessionID, address)
		assert.ErrorIs(t, err, entity.ErrEmptyCart)
	})

	t.Run("address required", func(t *testing.T) {
		env := newTestEnv(t)
		env.login(t, "jane@example.com")
		_, _ = env.cart.Add(ctx, env.sessionID, 1)

		_, err := env.cart.PlaceOrder(ctx, env.sessionID, entity.ShippingAddress{City: "  "})
		assert.ErrorIs(t, err, entity.ErrInvalidAddress)
	})

	t.Run("success empties the cart", func(t *testing.T) {
		env := newTestEnv(t)
		env.login(t, "jane@example.com")
		_, _ = env.cart.Add(ctx, env.sessionID, 1)
		_, _ = env.cart.Add(ctx, env.sessionID, 2)
		_, _ = env.cart.Add(ctx, env.sessionID, 2)

		order, err := env.cart.PlaceOrder(ctx, env.sessionID, address)
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "12 Ring Road, Accra, 00233", order.ShippingAddress)
		assert.Equal(t, entity.OrderPending, order.Status)
		assert.Len(t, order.Items, 2)
		assert.InDelta(t, (45.99+65.0)*1.08, order.Total, 1e-9)

		s, err := env.sessionRepo.Get(ctx, env.sessionID)
		require.NoError(t, err)
		assert.Empty(t, s.Cart)
		assert.Equal(t, entity.PageOrderSuccess, s.Page)
		require.NotNil(t, s.LastOrder)
		assert.Equal(t, order.ID, s.LastOrder.ID)
		assert.Equal(t, 1, env.metrics.orders)

		// checkout does not touch stock
		p, _ := env.catalogRepo.GetProduct(ctx, 2)
		assert.Equal(t, 500, p.Stock)
	})
}
