package http

import (
	"errors"

	"menuorder/internal/core/application/usecases/queries"
	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toOrderIDs(venueId servers.VenueId, orderId servers.OrderId) (kernel.UUID, kernel.UUID, error) {
	venueID, venueErr := toKernelID(venueId)
	orderID, orderErr := toKernelID(orderId)
	return venueID, orderID, errors.Join(venueErr, orderErr)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toMenu(menu queries.GetMenuQueryResponse) servers.Menu {
	products := make([]servers.Product, len(menu.Products))
	for i, p := range menu.Products {
		groups := make([]servers.VariationGroup, len(p.Groups))
		for j, g := range p.Groups {
			options := make([]servers.VariationOption, len(g.Options))
			for k, o := range g.Options {
				options[k] = servers.VariationOption{
					Id:              o.ID.Bytes(),
					Name:            o.Name,
					PriceAdjustment: o.PriceAdjustment.String(),
				}
			}
			groups[j] = servers.VariationGroup{
				Id:      g.ID.Bytes(),
				Name:    g.Name,
				Options: options,
			}
		}
		products[i] = servers.Product{
			Id:              p.ID.Bytes(),
			Name:            p.Name,
			BasePrice:       p.BasePrice.String(),
			ImageRef:        optional(p.ImageRef),
			VariationGroups: groups,
		}
	}

	tables := menu.TableNumbers
	if tables == nil {
		tables = []string{}
	}

	return servers.Menu{
		VenueId:        menu.VenueID.Bytes(),
		Name:           menu.Name,
		CurrencySymbol: menu.CurrencySymbol,
		TableNumbers:   tables,
		Products:       products,
	}
}

func toVariations(variations []catalog.SelectedVariation) []servers.SelectedVariation {
	result := make([]servers.SelectedVariation, len(variations))
	for i, v := range variations {
		result[i] = servers.SelectedVariation{
			GroupId:         v.GroupID.Bytes(),
			GroupName:       v.GroupName,
			OptionId:        v.OptionID.Bytes(),
			OptionName:      v.OptionName,
			PriceAdjustment: v.PriceAdjustment.String(),
		}
	}
	return result
}

func toCart(c queries.GetCartQueryResponse) servers.Cart {
	items := make([]servers.CartItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = servers.CartItem{
			Key:        item.Key,
			ProductId:  item.ProductID.Bytes(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.String(),
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal.String(),
			ImageRef:   optional(item.ImageRef),
			Variations: toVariations(item.Variations),
		}
	}

	return servers.Cart{
		Items:     items,
		Total:     c.Total.String(),
		ItemCount: c.ItemCount,
	}
}

func toOrder(o queries.OrderResponse) servers.Order {
	items := make([]servers.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = servers.OrderItem{
			ProductId:  item.ProductID.Bytes(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.String(),
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal.String(),
			ImageRef:   optional(item.ImageRef),
			Variations: toVariations(item.Variations),
		}
	}

	return servers.Order{
		Id:          o.ID.Bytes(),
		TableNumber: o.TableNumber,
		KitchenNote: optional(o.KitchenNote),
		Status:      servers.OrderStatus(o.Status.String()),
		Total:       o.Total.String(),
		ItemCount:   o.ItemCount,
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}
