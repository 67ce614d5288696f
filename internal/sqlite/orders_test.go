package sqlite

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var testOrder = salon.OrderInput{
	OrderDate:    "01/02/2024",
	DeliveryDate: "05/02/2024",
	OrderValue:   "35.00",
}

func TestOrderRepo_CreateWithStock(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	products := NewProductRepo(db)
	orders := NewOrderRepo(db)

	p, err := products.Create(ctx, testProduct)
	require.NoError(t, err)

	in := testOrder
	in.ProductUsed = "ignored"
	o, after, err := orders.CreateWithStock(ctx, in, false, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Esmalte Vermelho", o.ProductUsed)
	assert.False(t, o.Delivered)
	assert.Equal(t, 4, after.Stock)

	all, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *o, all[0])
}

func TestOrderRepo_CreateWithStock_MissingProductRollsBack(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderRepo(openTestDB(t))

	_, _, err := orders.CreateWithStock(ctx, testOrder, false, 42)
	assert.ErrorIs(t, err, salon.ErrNotFound)

	all, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRepo_CreateWithStock_AllowsNegativeStock(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	p, err := NewProductRepo(db).Create(ctx, salon.ProductInput{Name: "last", Stock: 0})
	require.NoError(t, err)

	_, after, err := NewOrderRepo(db).CreateWithStock(ctx, testOrder, true, p.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, after.Stock)
}

func TestOrderRepo_UpdateAndFinalize(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	orders := NewOrderRepo(db)

	p, err := NewProductRepo(db).Create(ctx, testProduct)
	require.NoError(t, err)
	o, _, err := orders.CreateWithStock(ctx, testOrder, false, p.ID)
	require.NoError(t, err)

	updated, err := orders.Update(ctx, o.ID, salon.OrderInput{
		OrderDate:    "02/02/2024",
		DeliveryDate: "06/02/2024",
		OrderValue:   "40",
		ProductUsed:  "Esmalte Rosa",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Esmalte Rosa", updated.ProductUsed)
	assert.Equal(t, "40", updated.OrderValue)

	for i := 0; i < 2; i++ {
		done, err := orders.MarkDelivered(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, done.Delivered)
		assert.Equal(t, o.ID, done.ID)
	}

	all, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	delivered, err := orders.ListDelivered(ctx)
	require.NoError(t, err)
	assert.Len(t, delivered, 1)

	_, err = orders.MarkDelivered(ctx, o.ID+100)
	assert.ErrorIs(t, err, salon.ErrNotFound)
	_, err = orders.Update(ctx, o.ID+100, testOrder, true)
	assert.ErrorIs(t, err, salon.ErrNotFound)
}

func TestOrderRepo_DeleteKeepsStock(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	products := NewProductRepo(db)
	orders := NewOrderRepo(db)

	p, err := products.Create(ctx, testProduct)
	require.NoError(t, err)
	o, _, err := orders.CreateWithStock(ctx, testOrder, false, p.ID)
	require.NoError(t, err)

	require.NoError(t, orders.Delete(ctx, o.ID))
	assert.ErrorIs(t, orders.Delete(ctx, o.ID), salon.ErrNotFound)

	after, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, after.Stock)
}
