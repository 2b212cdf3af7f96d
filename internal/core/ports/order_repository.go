// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work, cart storage, the checkout
// lock and order change notifications.
package ports

import (
	"context"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order. Items, totals and the
	// table never change after creation, so only the status is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order permanently. Unknown ids are a no-op.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteAllByVenue removes every order of the venue and returns how many
	// were removed.
	DeleteAllByVenue(ctx context.Context, venueID kernel.UUID) (int64, error)

	// DeleteTerminalBefore removes served and cancelled orders created before
	// the cutoff, across all venues.
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
