// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by venue and creation time for the console listing, and by status
// for the filters and the retention purge.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VenueID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_venue_created,priority:1"`
	TableNumber string          `gorm:"type:varchar(16);not null"`
	KitchenNote string          `gorm:"type:text;not null;default:''"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ItemCount   int             `gorm:"not null"`
	Status      int             `gorm:"type:smallint;not null;index"`
	CreatedAt   time.Time       `gorm:"not null;index:idx_orders_venue_created,priority:2"`
	Items       []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one snapshotted line of an order. Position keeps the cart
// order of the lines.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	ItemKey    string          `gorm:"type:text;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity   int             `gorm:"not null"`
	ImageRef   string          `gorm:"type:text;not null;default:''"`
	Variations []VariationDTO  `gorm:"serializer:json;type:text"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// VariationDTO is the JSON form of a selected variation.
type VariationDTO struct {
	GroupID         uuid.UUID       `json:"groupId"`
	GroupName       string          `json:"groupName"`
	OptionID        uuid.UUID       `json:"optionId"`
	OptionName      string          `json:"optionName"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

// FromVariations converts selected variations to their JSON form. The
// product repository stores its own groups; carts in Redis reuse it.
func FromVariations(variations []catalog.SelectedVariation) []VariationDTO {
	dtos := make([]VariationDTO, 0, len(variations))
	for _, v := range variations {
		dtos = append(dtos, VariationDTO{
			GroupID:         v.GroupID.Bytes(),
			GroupName:       v.GroupName,
			OptionID:        v.OptionID.Bytes(),
			OptionName:      v.OptionName,
			PriceAdjustment: v.PriceAdjustment.Decimal(),
		})
	}
	return dtos
}

// ToVariations converts the JSON form back to selected variations.
func ToVariations(dtos []VariationDTO) ([]catalog.SelectedVariation, error) {
	variations := make([]catalog.SelectedVariation, 0, len(dtos))
	for _, dto := range dtos {
		groupID, err := kernel.UUIDFromBytes(dto.GroupID[:])
		if err != nil {
			return nil, err
		}
		optionID, err := kernel.UUIDFromBytes(dto.OptionID[:])
		if err != nil {
			return nil, err
		}
		variations = append(variations, catalog.SelectedVariation{
			GroupID:         groupID,
			GroupName:       dto.GroupName,
			OptionID:        optionID,
			OptionName:      dto.OptionName,
			PriceAdjustment: kernel.NewMoney(dto.PriceAdjustment),
		})
	}
	return variations, nil
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    orderID,
			Position:   i,
			ProductID:  item.ProductID().Bytes(),
			ItemKey:    item.Key(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Decimal(),
			Quantity:   item.Quantity(),
			ImageRef:   item.ImageRef(),
			Variations: FromVariations(item.Variations()),
		})
	}

	return OrderDTO{
		ID:          orderID,
		VenueID:     aggregate.VenueID().Bytes(),
		TableNumber: aggregate.TableNumber(),
		KitchenNote: aggregate.KitchenNote(),
		Total:       aggregate.Total().Decimal(),
		ItemCount:   aggregate.ItemCount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt().UTC(),
		Items:       items,
	}
}

// toDomain converts a database DTO, with its items preloaded, to an order
// domain aggregate using RestoreOrder. Total and item count are derived
// from the items again.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	venueID, err := kernel.UUIDFromBytes(dto.VenueID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		variations, varErr := ToVariations(itemDTO.Variations)
		if varErr != nil {
			return nil, varErr
		}
		item, itemErr := order.NewItem(
			productID,
			itemDTO.ItemKey,
			itemDTO.Name,
			kernel.NewMoney(itemDTO.UnitPrice),
			itemDTO.Quantity,
			itemDTO.ImageRef,
			variations,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		venueID,
		dto.TableNumber,
		dto.KitchenNote,
		items,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}
