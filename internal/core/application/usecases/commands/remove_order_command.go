package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrRemoveOrderCommandIsNotConstructed = errors.New(
	"RemoveOrderCommand must be created via NewRemoveOrderCommand constructor",
)

// RemoveOrderCommand deletes a served or cancelled order permanently.
type RemoveOrderCommand struct { //nolint:recvcheck //using for validation
	venueOrder

	guard guard.ConstructorGuard
}

func NewRemoveOrderCommand(venueID, orderID kernel.UUID) (RemoveOrderCommand, error) {
	cmd := RemoveOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setIDs(venueID, orderID); err != nil {
		return RemoveOrderCommand{}, err
	}
	return cmd, nil
}

func (c RemoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderCommandIsNotConstructed)
}
