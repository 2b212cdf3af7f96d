package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand submits the session's cart as a new order for a table.
// The caller chooses the order id (kernel.NewOrderedUUID) so it can answer
// with it once the command succeeds.
//
// Table number and cart contents are checked by the handler against the
// venue, so a missing table is reported as a validation error before any
// order exists.
//
// Example:
//
//	orderID := kernel.NewOrderedUUID()
//	cmd, err := NewCheckoutCommand(venueID, sessionID, orderID, "4", "no onions")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	cartSession
	orderID     kernel.UUID
	tableNumber string
	kitchenNote string

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(
	venueID kernel.UUID,
	sessionID string,
	orderID kernel.UUID,
	tableNumber string,
	kitchenNote string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		tableNumber: tableNumber,
		kitchenNote: kitchenNote,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVenueID(venueID),
		cmd.setSessionID(sessionID),
		cmd.setOrderID(orderID),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CheckoutCommand) TableNumber() string {
	return c.tableNumber
}

func (c CheckoutCommand) KitchenNote() string {
	return c.kitchenNote
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
