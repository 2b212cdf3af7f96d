// Package servers holds the HTTP types, the ServerInterface and the echo
// binding wrapper for api/openapi.yml.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Money defines model for Money.
type Money = string

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// VariationOption defines model for VariationOption.
type VariationOption struct {
	Id              openapi_types.UUID `json:"id"`
	Name            string             `json:"name"`
	PriceAdjustment Money              `json:"priceAdjustment"`
}

// VariationGroup defines model for VariationGroup.
type VariationGroup struct {
	Id      openapi_types.UUID `json:"id"`
	Name    string             `json:"name"`
	Options []VariationOption  `json:"options"`
}

// Product defines model for Product.
type Product struct {
	Id              openapi_types.UUID `json:"id"`
	Name            string             `json:"name"`
	BasePrice       Money              `json:"basePrice"`
	ImageRef        *string            `json:"imageRef,omitempty"`
	VariationGroups []VariationGroup   `json:"variationGroups"`
}

// Menu defines model for Menu.
type Menu struct {
	VenueId        openapi_types.UUID `json:"venueId"`
	Name           string             `json:"name"`
	CurrencySymbol string             `json:"currencySymbol"`
	TableNumbers   []string           `json:"tableNumbers"`
	Products       []Product          `json:"products"`
}

// SelectedVariation defines model for SelectedVariation.
type SelectedVariation struct {
	GroupId         openapi_types.UUID `json:"groupId"`
	GroupName       string             `json:"groupName"`
	OptionId        openapi_types.UUID `json:"optionId"`
	OptionName      string             `json:"optionName"`
	PriceAdjustment Money              `json:"priceAdjustment"`
}

// CartItem defines model for CartItem.
type CartItem struct {
	Key        string              `json:"key"`
	ProductId  openapi_types.UUID  `json:"productId"`
	Name       string              `json:"name"`
	UnitPrice  Money               `json:"unitPrice"`
	Quantity   int                 `json:"quantity"`
	Subtotal   Money               `json:"subtotal"`
	ImageRef   *string             `json:"imageRef,omitempty"`
	Variations []SelectedVariation `json:"variations"`
}

// Cart defines model for Cart.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     Money      `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// NewCartItem defines model for NewCartItem.
type NewCartItem struct {
	ProductId openapi_types.UUID    `json:"productId"`
	OptionIds *[]openapi_types.UUID `json:"optionIds,omitempty"`
	Quantity  *int                  `json:"quantity,omitempty"`
}

// CartItemQuantity defines model for CartItemQuantity.
type CartItemQuantity struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest defines model for CheckoutRequest.
type CheckoutRequest struct {
	TableNumber string  `json:"tableNumber"`
	KitchenNote *string `json:"kitchenNote,omitempty"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ProductId  openapi_types.UUID  `json:"productId"`
	Name       string              `json:"name"`
	UnitPrice  Money               `json:"unitPrice"`
	Quantity   int                 `json:"quantity"`
	Subtotal   Money               `json:"subtotal"`
	ImageRef   *string             `json:"imageRef,omitempty"`
	Variations []SelectedVariation `json:"variations"`
}

// Order defines model for Order.
type Order struct {
	Id          openapi_types.UUID `json:"id"`
	TableNumber string             `json:"tableNumber"`
	KitchenNote *string            `json:"kitchenNote,omitempty"`
	Status      OrderStatus        `json:"status"`
	Total       Money              `json:"total"`
	ItemCount   int                `json:"itemCount"`
	CreatedAt   time.Time          `json:"createdAt"`
	Items       []OrderItem        `json:"items"`
}

// OrderStatusUpdate defines model for OrderStatusUpdate.
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// OrderStats defines model for OrderStats.
type OrderStats struct {
	Total          int    `json:"total"`
	Active         int    `json:"active"`
	TodayCount     int    `json:"todayCount"`
	TodayRevenue   Money  `json:"todayRevenue"`
	CurrencySymbol string `json:"currencySymbol"`
}

// ClearResult defines model for ClearResult.
type ClearResult struct {
	Removed int64 `json:"removed"`
}

// VenueId defines model for VenueId.
type VenueId = openapi_types.UUID

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// ItemKey defines model for ItemKey.
type ItemKey = string

// SessionParams defines the header parameters of the cart and checkout operations.
type SessionParams struct {
	XSessionID string `json:"X-Session-ID"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *[]OrderStatus `form:"status,omitempty" json:"status,omitempty"`
}

// ClearOrdersParams defines parameters for ClearOrders.
type ClearOrdersParams struct {
	Confirm *bool `form:"confirm,omitempty" json:"confirm,omitempty"`
}
