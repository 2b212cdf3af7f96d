package ports

import (
	"context"
	"errors"
	"time"

	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/domain/model/kernel"
)

// CartRepository stores the ephemeral cart of a (venue, session) pair.
// Carts live outside the order database.
type CartRepository interface {
	// Get returns the stored cart or a new empty one when none exists.
	Get(ctx context.Context, venueID kernel.UUID, sessionID string) (*cart.Cart, error)

	// Save stores the cart. An empty cart is deleted.
	Save(ctx context.Context, c *cart.Cart) error

	Delete(ctx context.Context, venueID kernel.UUID, sessionID string) error
}

var ErrCheckoutInProgress = errors.New("checkout is already in progress for this session")

// CheckoutLock is the busy flag that keeps one session from submitting two
// checkouts at the same time.
type CheckoutLock interface {
	// Acquire returns ErrCheckoutInProgress when the session already holds the
	// lock. The returned release func must be called exactly once. The lock
	// expires after ttl even if release is never called.
	Acquire(ctx context.Context, venueID kernel.UUID, sessionID string, ttl time.Duration) (release func(), err error)
}
