package commands

import (
	"context"
)

// AdvanceOrderStatusCommandHandler applies the next status of the workflow.
//
// Example:
//
//	handler := NewAdvanceOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewAdvanceOrderStatusCommand(venueID, orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle advances the order. Advancing a served or cancelled order is a
// no-op and nothing is written.
func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := getVenueOrder(ctx, repo, cmd.VenueID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.Advance() {
		return nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
