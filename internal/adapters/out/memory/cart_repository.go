// Package memory keeps customer carts and checkout locks in process memory.
// It serves single-instance deployments and tests; the redis package is the
// shared alternative.
package memory

import (
	"context"
	"sync"

	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/domain/model/kernel"
)

type cartKey struct {
	venueID   string
	sessionID string
}

func keyOf(venueID kernel.UUID, sessionID string) cartKey {
	return cartKey{venueID: venueID.String(), sessionID: sessionID}
}

// CartRepository stores value copies of carts, so a cart loaded by one
// request never aliases the cart of another.
type CartRepository struct {
	mu    sync.Mutex
	carts map[cartKey][]cart.LineItem
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[cartKey][]cart.LineItem)}
}

func (r *CartRepository) Get(_ context.Context, venueID kernel.UUID, sessionID string) (*cart.Cart, error) {
	r.mu.Lock()
	items := r.carts[keyOf(venueID, sessionID)]
	r.mu.Unlock()

	return cart.RestoreCart(venueID, sessionID, items)
}

func (r *CartRepository) Save(_ context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	key := keyOf(c.VenueID(), c.SessionID())
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.IsEmpty() {
		delete(r.carts, key)
		return nil
	}
	r.carts[key] = c.Items()
	return nil
}

func (r *CartRepository) Delete(_ context.Context, venueID kernel.UUID, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, keyOf(venueID, sessionID))
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored carts.
func (r *CartRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
