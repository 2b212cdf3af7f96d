// Package productrepo persists the catalog products of each venue. Variation
// groups are stored as a JSON column next to the product.
package productrepo

import (
	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VenueID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_products_venue_position,priority:1"`
	Position  int             `gorm:"not null;default:0;index:idx_products_venue_position,priority:2"`
	Name      string          `gorm:"type:varchar(255);not null"`
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ImageRef  string          `gorm:"type:text;not null;default:''"`
	Groups    []GroupDTO      `gorm:"serializer:json;type:text"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type GroupDTO struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Options []OptionDTO `json:"options"`
}

type OptionDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

func fromDomain(p *catalog.Product, position int) ProductDTO {
	groups := make([]GroupDTO, 0, len(p.VariationGroups()))
	for _, g := range p.VariationGroups() {
		options := make([]OptionDTO, 0, len(g.Options()))
		for _, o := range g.Options() {
			options = append(options, OptionDTO{
				ID:              o.ID().Bytes(),
				Name:            o.Name(),
				PriceAdjustment: o.PriceAdjustment().Decimal(),
			})
		}
		groups = append(groups, GroupDTO{ID: g.ID().Bytes(), Name: g.Name(), Options: options})
	}

	return ProductDTO{
		ID:        p.ID().Bytes(),
		VenueID:   p.VenueID().Bytes(),
		Position:  position,
		Name:      p.Name(),
		BasePrice: p.BasePrice().Decimal(),
		ImageRef:  p.ImageRef(),
		Groups:    groups,
	}
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	venueID, err := kernel.UUIDFromBytes(dto.VenueID[:])
	if err != nil {
		return nil, err
	}

	groups := make([]catalog.VariationGroup, 0, len(dto.Groups))
	for _, g := range dto.Groups {
		options := make([]catalog.VariationOption, 0, len(g.Options))
		for _, o := range g.Options {
			optionID, optErr := kernel.UUIDFromBytes(o.ID[:])
			if optErr != nil {
				return nil, optErr
			}
			option, optErr := catalog.NewVariationOption(optionID, o.Name, kernel.NewMoney(o.PriceAdjustment))
			if optErr != nil {
				return nil, optErr
			}
			options = append(options, option)
		}

		groupID, groupErr := kernel.UUIDFromBytes(g.ID[:])
		if groupErr != nil {
			return nil, groupErr
		}
		group, groupErr := catalog.NewVariationGroup(groupID, g.Name, options...)
		if groupErr != nil {
			return nil, groupErr
		}
		groups = append(groups, group)
	}

	return catalog.NewProduct(id, venueID, dto.Name, kernel.NewMoney(dto.BasePrice), dto.ImageRef, groups...)
}
