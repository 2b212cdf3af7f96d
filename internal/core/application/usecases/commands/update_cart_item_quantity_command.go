package commands

import (
	"errors"
	"strings"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrUpdateCartItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartItemQuantityCommand must be created via NewUpdateCartItemQuantityCommand constructor",
)

// UpdateCartItemQuantityCommand sets the quantity of one cart line.
// A quantity of zero or less removes the line.
type UpdateCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	cartSession
	itemKey  string
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemQuantityCommand(
	venueID kernel.UUID,
	sessionID string,
	itemKey string,
	quantity int,
) (UpdateCartItemQuantityCommand, error) {
	cmd := UpdateCartItemQuantityCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVenueID(venueID),
		cmd.setSessionID(sessionID),
		cmd.setItemKey(itemKey),
	); err != nil {
		return UpdateCartItemQuantityCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemQuantityCommandIsNotConstructed)
}

func (c UpdateCartItemQuantityCommand) ItemKey() string {
	return c.itemKey
}

func (c UpdateCartItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartItemQuantityCommand) setItemKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("itemKey")
	}
	c.itemKey = key
	return nil
}
