package commands

import (
	"context"

	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/ports"
)

// AddCartItemCommandHandler resolves the product selection against the
// catalog and merges the resulting line into the cart.
type AddCartItemCommandHandler struct {
	products ports.ProductRepository
	carts    ports.CartRepository
}

func NewAddCartItemCommandHandler(products ports.ProductRepository, carts ports.CartRepository) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		products: products,
		carts:    carts,
	}
}

// Handle loads the product of the venue, prices the selection, and saves
// the updated cart. Unknown products return errs.ObjectNotFoundError;
// options foreign to the product return a validation error.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	product, err := h.products.Get(ctx, cmd.VenueID(), cmd.ProductID())
	if err != nil {
		return err
	}

	selection, err := product.Select(cmd.OptionIDs())
	if err != nil {
		return err
	}

	item, err := cart.NewLineItem(
		product.ID(),
		product.Name(),
		selection.UnitPrice,
		cmd.Quantity(),
		product.ImageRef(),
		selection.Variations,
	)
	if err != nil {
		return err
	}

	basket, err := h.carts.Get(ctx, cmd.VenueID(), cmd.SessionID())
	if err != nil {
		return err
	}
	basket.AddItem(item)

	return h.carts.Save(ctx, basket)
}
