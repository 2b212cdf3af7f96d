package commands

import (
	"context"
	"time"
)

type PurgeTerminalOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewPurgeTerminalOrdersCommandHandler uses time.Now when now is nil.
func NewPurgeTerminalOrdersCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) PurgeTerminalOrdersCommandHandler {
	if now == nil {
		now = time.Now
	}
	return PurgeTerminalOrdersCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle returns the number of purged orders.
func (h PurgeTerminalOrdersCommandHandler) Handle(ctx context.Context, cmd PurgeTerminalOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.OrderRepository().DeleteTerminalBefore(ctx, h.now().Add(-cmd.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
