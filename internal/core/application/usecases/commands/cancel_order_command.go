package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order that is not yet served or cancelled.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	venueOrder

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(venueID, orderID kernel.UUID) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setIDs(venueID, orderID); err != nil {
		return CancelOrderCommand{}, err
	}
	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
