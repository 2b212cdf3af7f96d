package queries

import (
	"context"

	"menuorder/internal/core/ports"
)

type GetCartQueryHandler struct {
	carts ports.CartRepository
}

func NewGetCartQueryHandler(carts ports.CartRepository) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	c, err := h.carts.Get(ctx, query.VenueID(), query.SessionID())
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	lines := c.Items()
	response := GetCartQueryResponse{
		Items:     make([]CartItem, 0, len(lines)),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
	for _, line := range lines {
		response.Items = append(response.Items, CartItem{
			Key:        line.Key(),
			ProductID:  line.ProductID(),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice(),
			Quantity:   line.Quantity(),
			Subtotal:   line.Subtotal(),
			ImageRef:   line.ImageRef(),
			Variations: line.Variations(),
		})
	}
	return response, nil
}
