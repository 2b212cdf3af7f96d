package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves an order one step along
// pending -> preparing -> ready -> served.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	venueOrder

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(venueID, orderID kernel.UUID) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setIDs(venueID, orderID); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}
