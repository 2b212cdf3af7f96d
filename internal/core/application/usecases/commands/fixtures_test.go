package commands_test

import (
	"testing"
	"time"

	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/domain/model/venue"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 18, 18, 0, 0, 0, time.UTC)

func newTestVenue(t *testing.T) *venue.Venue {
	t.Helper()
	v, err := venue.NewVenue(kernel.NewUUID(), "Bistro", 10, "$", "")
	require.NoError(t, err)
	return v
}

func newTestProduct(t *testing.T, venueID kernel.UUID) (*catalog.Product, kernel.UUID) {
	t.Helper()
	largeID := kernel.NewUUID()
	small, err := catalog.NewVariationOption(kernel.NewUUID(), "Small", kernel.MustMoney("0"))
	require.NoError(t, err)
	large, err := catalog.NewVariationOption(largeID, "Large", kernel.MustMoney("1.50"))
	require.NoError(t, err)
	size, err := catalog.NewVariationGroup(kernel.NewUUID(), "Size", small, large)
	require.NoError(t, err)
	p, err := catalog.NewProduct(kernel.NewUUID(), venueID, "Latte", kernel.MustMoney("3.50"), "latte.png", size)
	require.NoError(t, err)
	return p, largeID
}

func newTestCart(t *testing.T, venueID kernel.UUID, sessionID string, lines ...cart.LineItem) *cart.Cart {
	t.Helper()
	c, err := cart.RestoreCart(venueID, sessionID, lines)
	require.NoError(t, err)
	return c
}

func newTestLine(t *testing.T, price string, qty int) cart.LineItem {
	t.Helper()
	item, err := cart.NewLineItem(kernel.NewUUID(), "Dish", kernel.MustMoney(price), qty, "", nil)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, venueID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	productID := kernel.NewUUID()
	item, err := order.NewItem(productID, productID.String(), "Dish", kernel.MustMoney("9.50"), 1, "", nil)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewOrderedUUID(), venueID, "3", "", []order.Item{item}, status, fixedNow)
	require.NoError(t, err)
	return o
}
