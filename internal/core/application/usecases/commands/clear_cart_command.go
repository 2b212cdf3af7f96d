package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

type ClearCartCommand struct { //nolint:recvcheck //using for validation
	cartSession

	guard guard.ConstructorGuard
}

func NewClearCartCommand(venueID kernel.UUID, sessionID string) (ClearCartCommand, error) {
	cmd := ClearCartCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setVenueID(venueID),
		cmd.setSessionID(sessionID),
	); err != nil {
		return ClearCartCommand{}, err
	}

	return cmd, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}
