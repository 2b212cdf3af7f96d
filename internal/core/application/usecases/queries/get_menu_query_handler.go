package queries

import (
	"context"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/ports"
)

// GetMenuQueryHandler reads the menu through the catalog repositories.
// It never opens a transaction.
type GetMenuQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetMenuQueryHandler(uowFactory ports.UnitOfWorkFactory) GetMenuQueryHandler {
	return GetMenuQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ObjectNotFoundError for an unknown venue.
func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) (GetMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMenuQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	v, err := uow.VenueRepository().Get(ctx, query.VenueID())
	if err != nil {
		return GetMenuQueryResponse{}, err
	}

	products, err := uow.ProductRepository().ListByVenue(ctx, v.ID())
	if err != nil {
		return GetMenuQueryResponse{}, err
	}

	menu := GetMenuQueryResponse{
		VenueID:        v.ID(),
		Name:           v.Name(),
		CurrencySymbol: v.CurrencySymbol(),
		TableNumbers:   v.TableNumbers(),
		Products:       make([]MenuProduct, 0, len(products)),
	}
	for _, p := range products {
		menu.Products = append(menu.Products, toMenuProduct(p))
	}
	return menu, nil
}

func toMenuProduct(p *catalog.Product) MenuProduct {
	groups := p.VariationGroups()
	product := MenuProduct{
		ID:        p.ID(),
		Name:      p.Name(),
		BasePrice: p.BasePrice(),
		ImageRef:  p.ImageRef(),
		Groups:    make([]MenuVariationGroup, 0, len(groups)),
	}
	for _, g := range groups {
		group := MenuVariationGroup{ID: g.ID(), Name: g.Name()}
		for _, o := range g.Options() {
			group.Options = append(group.Options, MenuVariationOption{
				ID:              o.ID(),
				Name:            o.Name(),
				PriceAdjustment: o.PriceAdjustment(),
			})
		}
		product.Groups = append(product.Groups, group)
	}
	return product
}
