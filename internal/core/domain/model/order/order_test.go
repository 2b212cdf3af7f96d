package order_test

import (
	"testing"
	"time"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

func newItem(t *testing.T, price string, qty int, variations ...catalog.SelectedVariation) order.Item {
	t.Helper()
	productID := kernel.NewUUID()
	item, err := order.NewItem(productID, productID.String(), "Burger", kernel.MustMoney(price), qty, "burger.png", variations)
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.Item{newItem(t, "10.00", 1)}
	}
	o, err := order.NewOrder(kernel.NewOrderedUUID(), kernel.NewUUID(), "4", "no onions", items, createdAt)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("should reject invalid values", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, "", "", kernel.MustMoney("-1"), 0, "", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value item fails validation", func(t *testing.T) {
		var item order.Item

		assert.Equal(t, order.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with derived totals", func(t *testing.T) {
		id := kernel.NewOrderedUUID()
		venueID := kernel.NewUUID()
		items := []order.Item{newItem(t, "12.99", 2), newItem(t, "5.99", 1)}

		o, err := order.NewOrder(id, venueID, " 4 ", "  extra napkins ", items, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.VenueID().IsEqual(venueID))
		assert.Equal(t, "4", o.TableNumber())
		assert.Equal(t, "extra napkins", o.KitchenNote())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "31.97", o.Total().String())
		assert.Equal(t, 3, o.ItemCount())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, "", "", nil, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "tableNumber")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "createdAt")
	})

	t.Run("should reject long kitchen note", func(t *testing.T) {
		note := make([]rune, order.MaxKitchenNoteLength+1)
		for i := range note {
			note[i] = 'ä'
		}

		_, err := order.NewOrder(kernel.NewOrderedUUID(), kernel.NewUUID(), "1", string(note),
			[]order.Item{newItem(t, "1", 1)}, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unconstructed item", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewOrderedUUID(), kernel.NewUUID(), "1", "",
			[]order.Item{{}}, createdAt)

		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore any valid status", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewOrderedUUID(), kernel.NewUUID(), "2", "",
			[]order.Item{newItem(t, "3.50", 2)}, order.Ready, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, "7.00", o.Total().String())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewOrderedUUID(), kernel.NewUUID(), "2", "",
			[]order.Item{newItem(t, "3.50", 2)}, order.Unknown, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	o1 := newOrder(t)
	o2 := newOrder(t)

	assert.True(t, o1.IsEqual(o1))
	assert.False(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(nil))
}

func TestOrder_Snapshot(t *testing.T) {
	t.Run("should not share item slice with caller", func(t *testing.T) {
		items := []order.Item{newItem(t, "2.00", 1)}
		o := newOrder(t, items...)

		items[0] = newItem(t, "99.00", 9)

		assert.Equal(t, "2.00", o.Items()[0].UnitPrice().String())
		assert.Equal(t, "2.00", o.Total().String())
	})

	t.Run("should not expose variations", func(t *testing.T) {
		v := catalog.SelectedVariation{
			GroupID: kernel.NewUUID(), GroupName: "Size",
			OptionID: kernel.NewUUID(), OptionName: "Large",
			PriceAdjustment: kernel.MustMoney("1.00"),
		}
		o := newOrder(t, newItem(t, "2.00", 1, v))

		got := o.Items()[0].Variations()
		got[0].OptionName = "Small"

		assert.Equal(t, "Large", o.Items()[0].Variations()[0].OptionName)
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("should walk the chain and stop at served", func(t *testing.T) {
		o := newOrder(t)

		require.True(t, o.Advance())
		assert.Equal(t, order.Preparing, o.Status())
		require.True(t, o.Advance())
		assert.Equal(t, order.Ready, o.Status())
		require.True(t, o.Advance())
		assert.Equal(t, order.Served, o.Status())

		assert.False(t, o.Advance())
		assert.Equal(t, order.Served, o.Status())
	})

	t.Run("should not advance cancelled order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())

		assert.False(t, o.Advance())
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	for steps := range 3 {
		o := newOrder(t)
		for range steps {
			o.Advance()
		}
		from := o.Status()

		t.Run("should cancel from "+from.String(), func(t *testing.T) {
			require.NoError(t, o.Cancel())
			assert.Equal(t, order.Cancelled, o.Status())
			assert.True(t, o.Status().IsTerminal())
		})
	}

	t.Run("should reject cancel of served order", func(t *testing.T) {
		o := newOrder(t)
		o.Advance()
		o.Advance()
		o.Advance()

		err := o.Cancel()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Served, o.Status())
	})

	t.Run("should reject second cancel", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())

		require.Error(t, o.Cancel())
	})
}

func TestOrder_OverwriteStatus(t *testing.T) {
	t.Run("should overwrite without transition rules", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())

		require.NoError(t, o.OverwriteStatus(order.Preparing))

		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		o := newOrder(t)

		require.Error(t, o.OverwriteStatus(order.Unknown))
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should never change items", func(t *testing.T) {
		o := newOrder(t, newItem(t, "4.20", 2))
		total := o.Total()

		o.Advance()
		_ = o.OverwriteStatus(order.Ready)
		_ = o.Cancel()

		assert.True(t, total.IsEqual(o.Total()))
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, "4", o.TableNumber())
	})
}
