package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
)

// MaxKitchenNoteLength is the maximum number of characters in a kitchen note.
const MaxKitchenNoteLength = 500

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a submitted customer request to the kitchen. It is the aggregate
// root of the admin order workflow.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and venue
//   - Items are a value snapshot and never change after creation
//   - Total and item count are derived from the items once, at creation
//   - Table number and kitchen note never change after creation
//   - Only the status mutates, through Advance, Cancel or OverwriteStatus
type Order struct {
	id          kernel.UUID
	venueID     kernel.UUID
	items       []Item
	tableNumber string
	kitchenNote string
	total       kernel.Money
	itemCount   int
	status      Status
	createdAt   time.Time

	isConstructed bool
}

// NewOrder creates a pending order from a snapshot of line items.
//
// Parameters:
//   - id: Unique identifier for the order (kernel.NewOrderedUUID in production)
//   - venueID: The venue the order belongs to
//   - tableNumber: The table the order is served to (non-empty)
//   - kitchenNote: Free text for the kitchen, at most MaxKitchenNoteLength characters
//   - items: At least one constructed item; the slice is copied
//   - createdAt: Submission time
//
// Returns:
//   - *Order: The created order in Pending status
//   - error: All validation errors joined together
func NewOrder(
	id kernel.UUID,
	venueID kernel.UUID,
	tableNumber string,
	kitchenNote string,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, venueID, tableNumber, kitchenNote, items, Pending, createdAt)
}

// RestoreOrder rebuilds an order loaded from storage in any valid status.
func RestoreOrder(
	id kernel.UUID,
	venueID kernel.UUID,
	tableNumber string,
	kitchenNote string,
	items []Item,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setVenueID(venueID),
		o.setTableNumber(tableNumber),
		o.setKitchenNote(kitchenNote),
		o.setItems(items),
		o.setStatus(status),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) VenueID() kernel.UUID {
	return o.venueID
}

func (o *Order) TableNumber() string {
	return o.tableNumber
}

func (o *Order) KitchenNote() string {
	return o.kitchenNote
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) ItemCount() int {
	return o.itemCount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns a copy of the order items.
func (o *Order) Items() []Item {
	items := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, item.clone())
	}
	return items
}

// Figures returns the subset of the order used by the aggregate stats.
func (o *Order) Figures() Figures {
	return Figures{Status: o.status, Total: o.total, CreatedAt: o.createdAt}
}

// Advance moves the order to the next status in the linear chain.
//
// Returns false and leaves the order untouched when the status is terminal.
//
// Example:
//
//	o.Advance() // pending -> preparing
//	o.Advance() // preparing -> ready
//	o.Advance() // ready -> served
//	o.Advance() // false, still served
func (o *Order) Advance() bool {
	next, ok := o.status.Next()
	if !ok {
		return false
	}
	o.status = next
	return true
}

// Cancel moves a non-terminal order to Cancelled.
//
// Returns an error for served or already cancelled orders.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// OverwriteStatus sets the status without consulting the transition graph.
// It backs the manual status override of the admin console; only the
// validity of the status itself is checked.
func (o *Order) OverwriteStatus(status Status) error {
	return o.setStatus(status)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setVenueID(venueID kernel.UUID) error {
	if err := venueID.Validate(); err != nil {
		return err
	}
	o.venueID = venueID
	return nil
}

func (o *Order) setTableNumber(tableNumber string) error {
	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return errs.NewValueIsRequiredError("tableNumber")
	}
	o.tableNumber = tableNumber
	return nil
}

func (o *Order) setKitchenNote(note string) error {
	note = strings.TrimSpace(note)
	if n := utf8.RuneCountInString(note); n > MaxKitchenNoteLength {
		return errs.NewValueIsOutOfRangeError("kitchenNote length", n, 0, MaxKitchenNoteLength)
	}
	o.kitchenNote = note
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	o.items = make([]Item, 0, len(items))
	o.total = kernel.Money{}
	o.itemCount = 0
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		o.items = append(o.items, item.clone())
		o.total = o.total.Add(item.Subtotal())
		o.itemCount += item.Quantity()
	}
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
