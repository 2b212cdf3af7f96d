package commands

import (
	"errors"
	"strings"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	cartSession
	itemKey string

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(venueID kernel.UUID, sessionID, itemKey string) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setVenueID(venueID),
		cmd.setSessionID(sessionID),
		cmd.setItemKey(itemKey),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return cmd, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) ItemKey() string {
	return c.itemKey
}

func (c *RemoveCartItemCommand) setItemKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("itemKey")
	}
	c.itemKey = key
	return nil
}
