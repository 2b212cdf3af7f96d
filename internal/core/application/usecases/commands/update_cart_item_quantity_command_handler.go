package commands

import (
	"context"

	"menuorder/internal/core/ports"
)

type UpdateCartItemQuantityCommandHandler struct {
	carts ports.CartRepository
}

func NewUpdateCartItemQuantityCommandHandler(carts ports.CartRepository) UpdateCartItemQuantityCommandHandler {
	return UpdateCartItemQuantityCommandHandler{carts: carts}
}

// Handle updates the line and saves the cart. Unknown keys leave the cart
// unchanged.
func (h UpdateCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	basket, err := h.carts.Get(ctx, cmd.VenueID(), cmd.SessionID())
	if err != nil {
		return err
	}
	basket.UpdateQuantity(cmd.ItemKey(), cmd.Quantity())

	return h.carts.Save(ctx, basket)
}
