package commands

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand puts a product with a variation selection into the
// session's cart. Adding a selection already in the cart increases its
// quantity.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(venueID, sessionID, productID, []kernel.UUID{largeID}, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid cart item: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	cartSession
	productID kernel.UUID
	optionIDs []kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand validates the identifiers. A quantity below 1 is
// normalized to 1 by the cart.
func NewAddCartItemCommand(
	venueID kernel.UUID,
	sessionID string,
	productID kernel.UUID,
	optionIDs []kernel.UUID,
	quantity int,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVenueID(venueID),
		cmd.setSessionID(sessionID),
		cmd.setProductID(productID),
		cmd.setOptionIDs(optionIDs),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AddCartItemCommand) OptionIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.optionIDs...)
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *AddCartItemCommand) setOptionIDs(optionIDs []kernel.UUID) error {
	for _, id := range optionIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.optionIDs = append([]kernel.UUID(nil), optionIDs...)
	return nil
}
