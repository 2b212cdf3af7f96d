package queries

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/guard"
)

var ErrGetMenuQueryIsNotConstructed = errors.New(
	"GetMenuQuery must be created via NewGetMenuQuery constructor",
)

// GetMenuQuery retrieves the venue settings and its products for the menu screen.
//
// Example:
//
//	query, err := NewGetMenuQuery(venueID)
//	if err != nil {
//	    return err
//	}
//
//	menu, err := handler.Handle(ctx, query)
//	for _, p := range menu.Products {
//	    fmt.Printf("%s %s\n", p.Name, p.BasePrice.Format(menu.CurrencySymbol))
//	}
type GetMenuQuery struct {
	venueID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMenuQuery(venueID kernel.UUID) (GetMenuQuery, error) {
	if err := venueID.Validate(); err != nil {
		return GetMenuQuery{}, err
	}
	return GetMenuQuery{venueID: venueID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

func (q GetMenuQuery) VenueID() kernel.UUID {
	return q.venueID
}

// GetMenuQueryResponse is the menu of one venue.
type GetMenuQueryResponse struct {
	VenueID        kernel.UUID
	Name           string
	CurrencySymbol string
	TableNumbers   []string
	Products       []MenuProduct
}

type MenuProduct struct {
	ID        kernel.UUID
	Name      string
	BasePrice kernel.Money
	ImageRef  string
	Groups    []MenuVariationGroup
}

type MenuVariationGroup struct {
	ID      kernel.UUID
	Name    string
	Options []MenuVariationOption
}

type MenuVariationOption struct {
	ID              kernel.UUID
	Name            string
	PriceAdjustment kernel.Money
}
