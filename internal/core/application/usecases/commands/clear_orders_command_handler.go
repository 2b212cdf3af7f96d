package commands

import (
	"context"
)

type ClearOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewClearOrdersCommandHandler(uowFactory OrderUoWFactory) ClearOrdersCommandHandler {
	return ClearOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle deletes all orders of the venue and returns how many were removed.
func (h ClearOrdersCommandHandler) Handle(ctx context.Context, cmd ClearOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.OrderRepository().DeleteAllByVenue(ctx, cmd.VenueID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
