package commands

import (
	"context"

	"menuorder/internal/core/ports"
)

type RemoveCartItemCommandHandler struct {
	carts ports.CartRepository
}

func NewRemoveCartItemCommandHandler(carts ports.CartRepository) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{carts: carts}
}

// Handle removes the line; an absent key is a no-op.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	basket, err := h.carts.Get(ctx, cmd.VenueID(), cmd.SessionID())
	if err != nil {
		return err
	}
	basket.RemoveItem(cmd.ItemKey())

	return h.carts.Save(ctx, basket)
}
