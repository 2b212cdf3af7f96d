package commands

import (
	"context"

	"menuorder/internal/core/ports"
)

type ClearCartCommandHandler struct {
	carts ports.CartRepository
}

func NewClearCartCommandHandler(carts ports.CartRepository) ClearCartCommandHandler {
	return ClearCartCommandHandler{carts: carts}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.carts.Delete(ctx, cmd.VenueID(), cmd.SessionID())
}
