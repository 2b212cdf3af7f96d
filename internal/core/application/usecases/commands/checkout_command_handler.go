package commands

import (
	"context"
	"errors"
	"time"

	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/domain/model/checkout"
	"menuorder/internal/core/ports"
)

// DefaultCheckoutLockTTL bounds how long a crashed checkout can block its
// session.
const DefaultCheckoutLockTTL = 30 * time.Second

// CheckoutOptions tune the checkout handler.
type CheckoutOptions struct {
	// Delay is an artificial processing pause before the order is created.
	// Zero disables it.
	Delay time.Duration
	// LockTTL defaults to DefaultCheckoutLockTTL.
	LockTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// CheckoutCommandHandler turns the session's cart into a pending order.
//
// From the caller's view the order is created and the cart is cleared
// together, or nothing happens:
//   - validation failures return before any write
//   - a failed cart delete rolls the order transaction back
//   - a failed commit restores the cart that was deleted
//
// A second checkout for the same session while one is running fails with
// ports.ErrCheckoutInProgress.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	carts      ports.CartRepository
	lock       ports.CheckoutLock
	opts       CheckoutOptions
}

func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	carts ports.CartRepository,
	lock ports.CheckoutLock,
	opts CheckoutOptions,
) CheckoutCommandHandler {
	if opts.LockTTL <= 0 {
		opts.LockTTL = DefaultCheckoutLockTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
		lock:       lock,
		opts:       opts,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	release, err := h.lock.Acquire(ctx, cmd.VenueID(), cmd.SessionID(), h.opts.LockTTL)
	if err != nil {
		return err
	}
	defer release()

	if err = h.wait(ctx); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VenueRepository().Get(ctx, cmd.VenueID())
	if err != nil {
		return err
	}

	basket, err := h.carts.Get(ctx, cmd.VenueID(), cmd.SessionID())
	if err != nil {
		return err
	}
	restore, err := cart.RestoreCart(basket.VenueID(), basket.SessionID(), basket.Items())
	if err != nil {
		return err
	}

	co, err := checkout.NewCheckout(v)
	if err != nil {
		return err
	}
	co.SetTableNumber(cmd.TableNumber())
	co.SetKitchenNote(cmd.KitchenNote())

	o, err := co.Submit(basket, cmd.OrderID(), h.opts.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = h.carts.Delete(ctx, cmd.VenueID(), cmd.SessionID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		// The context may be what failed the commit; the cart still has to
		// come back.
		if saveErr := h.carts.Save(context.WithoutCancel(ctx), restore); saveErr != nil {
			return errors.Join(err, saveErr)
		}
		return err
	}

	return nil
}

func (h CheckoutCommandHandler) wait(ctx context.Context) error {
	if h.opts.Delay <= 0 {
		return nil
	}

	timer := time.NewTimer(h.opts.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
