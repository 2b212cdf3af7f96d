package ports

import (
	"context"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
)

type OrderChangeKind string

const (
	OrderCreated       OrderChangeKind = "created"
	OrderStatusChanged OrderChangeKind = "status_changed"
	OrderRemoved       OrderChangeKind = "removed"
	OrdersCleared      OrderChangeKind = "cleared"
)

// OrderChange tells the admin console that an order changed. OrderID is
// zero for OrdersCleared; Status is Unknown for removals.
type OrderChange struct {
	Kind       OrderChangeKind `json:"kind"`
	VenueID    kernel.UUID     `json:"venueId"`
	OrderID    kernel.UUID     `json:"orderId,omitzero"`
	Status     order.Status    `json:"status,omitzero"`
	OccurredAt time.Time       `json:"occurredAt"`
	Origin     string          `json:"origin,omitempty"`
}

// OrderChangePublisher delivers committed order changes. Publishing is best
// effort: a failed publish never undoes the committed change.
type OrderChangePublisher interface {
	Publish(ctx context.Context, changes ...OrderChange) error
}
