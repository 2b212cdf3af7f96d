package cart

import (
	"errors"
	"slices"
	"strings"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
)

var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")

// Cart is the aggregate of line items a customer builds for one venue
// session. It is not safe for concurrent use.
type Cart struct {
	venueID   kernel.UUID
	sessionID string
	items     []LineItem

	isConstructed bool
}

// NewCart creates an empty cart for the session.
func NewCart(venueID kernel.UUID, sessionID string) (*Cart, error) {
	c := &Cart{isConstructed: true}

	if err := errors.Join(c.setVenueID(venueID), c.setSessionID(sessionID)); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCart rebuilds a cart from storage. Items are merged through AddItem
// so a stored cart can never violate the composite key invariant.
func RestoreCart(venueID kernel.UUID, sessionID string, items []LineItem) (*Cart, error) {
	c, err := NewCart(venueID, sessionID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
		c.AddItem(item)
	}
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) VenueID() kernel.UUID {
	return c.venueID
}

func (c *Cart) SessionID() string {
	return c.sessionID
}

// AddItem merges item into the cart: an existing line with the same key has
// its quantity increased, otherwise the item is appended. Items not built
// through NewLineItem are ignored.
func (c *Cart) AddItem(item LineItem) {
	if item.Validate() != nil {
		return
	}
	if i := c.indexOf(item.Key()); i >= 0 {
		c.items[i] = c.items[i].withQuantity(c.items[i].Quantity() + item.Quantity())
		return
	}
	c.items = append(c.items, item.withQuantity(item.Quantity()))
}

// RemoveItem deletes the line with the key; absent keys are ignored.
func (c *Cart) RemoveItem(key string) {
	if i := c.indexOf(key); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

// UpdateQuantity sets the quantity of the line with the key. A quantity of
// zero or less removes the line. Absent keys are ignored.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(key)
		return
	}
	if i := c.indexOf(key); i >= 0 {
		c.items[i] = c.items[i].withQuantity(quantity)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total is the sum of unitPrice * quantity over all lines.
func (c *Cart) Total() kernel.Money {
	var total kernel.Money
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity()
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Item looks up a line by key.
func (c *Cart) Item(key string) (LineItem, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.items[i].withQuantity(c.items[i].Quantity()), true
	}
	return LineItem{}, false
}

// Items returns a deep copy of the lines in insertion order. Mutating the
// result never affects the cart.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item.withQuantity(item.Quantity()))
	}
	return items
}

func (c *Cart) indexOf(key string) int {
	return slices.IndexFunc(c.items, func(item LineItem) bool {
		return item.Key() == key
	})
}

func (c *Cart) setVenueID(venueID kernel.UUID) error {
	if err := venueID.Validate(); err != nil {
		return err
	}
	c.venueID = venueID
	return nil
}

func (c *Cart) setSessionID(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errs.NewValueIsRequiredError("sessionID")
	}
	c.sessionID = sessionID
	return nil
}
