package commands

import (
	"errors"
	"fmt"
	"time"

	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrPurgeTerminalOrdersCommandIsNotConstructed = errors.New(
	"PurgeTerminalOrdersCommand must be created via NewPurgeTerminalOrdersCommand constructor",
)

// PurgeTerminalOrdersCommand deletes served and cancelled orders older than
// the retention period. The retention job issues it.
type PurgeTerminalOrdersCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeTerminalOrdersCommand(retention time.Duration) (PurgeTerminalOrdersCommand, error) {
	if retention <= 0 {
		return PurgeTerminalOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is not greater than 0", retention))
	}

	return PurgeTerminalOrdersCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeTerminalOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeTerminalOrdersCommandIsNotConstructed)
}

func (c PurgeTerminalOrdersCommand) Retention() time.Duration {
	return c.retention
}
