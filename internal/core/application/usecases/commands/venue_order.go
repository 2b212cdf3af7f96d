package commands

import (
	"context"
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/ports"
	"menuorder/internal/pkg/errs"
)

var (
	ErrOrderIsTerminal    = errors.New("order is already served or cancelled")
	ErrOrderIsNotTerminal = errors.New("only served or cancelled orders can be removed")
)

// venueOrder identifies an order within a venue's console.
type venueOrder struct {
	venueID kernel.UUID
	orderID kernel.UUID
}

func (o *venueOrder) setIDs(venueID, orderID kernel.UUID) error {
	if err := errors.Join(venueID.Validate(), orderID.Validate()); err != nil {
		return err
	}
	o.venueID = venueID
	o.orderID = orderID
	return nil
}

func (o venueOrder) VenueID() kernel.UUID {
	return o.venueID
}

func (o venueOrder) OrderID() kernel.UUID {
	return o.orderID
}

// getVenueOrder loads the order and hides orders of other venues behind
// errs.ObjectNotFoundError.
func getVenueOrder(ctx context.Context, repo ports.OrderRepository, venueID, orderID kernel.UUID) (*order.Order, error) {
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.VenueID().IsEqual(venueID) {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}
	return o, nil
}
