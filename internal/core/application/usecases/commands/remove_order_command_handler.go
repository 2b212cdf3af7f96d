package commands

import (
	"context"
	"errors"

	"menuorder/internal/pkg/errs"
)

type RemoveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveOrderCommandHandler(uowFactory OrderUoWFactory) RemoveOrderCommandHandler {
	return RemoveOrderCommandHandler{uowFactory: uowFactory}
}

// Handle removes the order. Unknown ids are a no-op; orders that are still
// in the kitchen workflow return ErrOrderIsNotTerminal.
func (h RemoveOrderCommandHandler) Handle(ctx context.Context, cmd RemoveOrderCommand) error {
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
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !o.Status().IsTerminal() {
		return ErrOrderIsNotTerminal
	}

	if err = repo.Delete(ctx, o.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
