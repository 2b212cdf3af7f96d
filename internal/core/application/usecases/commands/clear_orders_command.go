package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrClearOrdersCommandIsNotConstructed = errors.New(
	"ClearOrdersCommand must be created via NewClearOrdersCommand constructor",
)

// ClearOrdersCommand deletes every order of a venue. It is irreversible, so
// the caller has to confirm it explicitly.
type ClearOrdersCommand struct { //nolint:recvcheck //using for validation
	venueID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearOrdersCommand(venueID kernel.UUID, confirmed bool) (ClearOrdersCommand, error) {
	var errList []error
	if err := venueID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if !confirmed {
		errList = append(errList, errs.NewValueIsRequiredError("confirm"))
	}
	if err := errors.Join(errList...); err != nil {
		return ClearOrdersCommand{}, err
	}

	return ClearOrdersCommand{
		venueID: venueID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ClearOrdersCommand) Validate() error {
	return c.guard.Validate(ErrClearOrdersCommandIsNotConstructed)
}

func (c ClearOrdersCommand) VenueID() kernel.UUID {
	return c.venueID
}
