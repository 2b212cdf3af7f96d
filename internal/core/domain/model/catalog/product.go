package catalog

import (
	"errors"
	"fmt"
	"strings"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// VariationOption is one choice inside a VariationGroup, e.g. "Large (+1.50)".
type VariationOption struct {
	id              kernel.UUID
	name            string
	priceAdjustment kernel.Money
}

// NewVariationOption builds an option. Negative adjustments are allowed.
func NewVariationOption(id kernel.UUID, name string, priceAdjustment kernel.Money) (VariationOption, error) {
	if err := id.Validate(); err != nil {
		return VariationOption{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return VariationOption{}, errs.NewValueIsRequiredError("option name")
	}
	return VariationOption{id: id, name: name, priceAdjustment: priceAdjustment}, nil
}

func (o VariationOption) ID() kernel.UUID               { return o.id }
func (o VariationOption) Name() string                  { return o.name }
func (o VariationOption) PriceAdjustment() kernel.Money { return o.priceAdjustment }

// VariationGroup is a single-choice set of options, e.g. "Size".
type VariationGroup struct {
	id      kernel.UUID
	name    string
	options []VariationOption
}

func NewVariationGroup(id kernel.UUID, name string, options ...VariationOption) (VariationGroup, error) {
	if err := id.Validate(); err != nil {
		return VariationGroup{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return VariationGroup{}, errs.NewValueIsRequiredError("variation group name")
	}
	if len(options) == 0 {
		return VariationGroup{}, errs.NewValueIsRequiredError("variation group options")
	}
	return VariationGroup{id: id, name: name, options: append([]VariationOption(nil), options...)}, nil
}

func (g VariationGroup) ID() kernel.UUID { return g.id }
func (g VariationGroup) Name() string    { return g.name }

func (g VariationGroup) Options() []VariationOption {
	return append([]VariationOption(nil), g.options...)
}

// SelectedVariation is the resolved, denormalized record of a chosen option.
// Carts and orders hold it by value.
type SelectedVariation struct {
	GroupID         kernel.UUID
	GroupName       string
	OptionID        kernel.UUID
	OptionName      string
	PriceAdjustment kernel.Money
}

// Selection is the outcome of Product.Select.
type Selection struct {
	UnitPrice  kernel.Money
	Variations []SelectedVariation
}

// Product is a menu item of a venue.
type Product struct {
	id        kernel.UUID
	venueID   kernel.UUID
	name      string
	basePrice kernel.Money
	imageRef  string
	groups    []VariationGroup

	guard guard.ConstructorGuard
}

// NewProduct validates and builds a Product.
func NewProduct(
	id, venueID kernel.UUID,
	name string,
	basePrice kernel.Money,
	imageRef string,
	groups ...VariationGroup,
) (*Product, error) {
	p := &Product{
		imageRef: imageRef,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setVenueID(venueID),
		p.setName(name),
		p.setBasePrice(basePrice),
		p.setGroups(groups),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID         { return p.id }
func (p *Product) VenueID() kernel.UUID    { return p.venueID }
func (p *Product) Name() string            { return p.name }
func (p *Product) BasePrice() kernel.Money { return p.basePrice }
func (p *Product) ImageRef() string        { return p.imageRef }

func (p *Product) VariationGroups() []VariationGroup {
	return append([]VariationGroup(nil), p.groups...)
}

// Select resolves the chosen option IDs into a unit price and the list of
// selected variations, ordered as the product's groups are.
//
// Returns a ValueIsInvalidError when an option does not belong to the
// product, when two options of the same group are chosen, or when the
// adjusted price would be negative.
func (p *Product) Select(optionIDs []kernel.UUID) (Selection, error) {
	chosen := make(map[kernel.UUID]bool, len(optionIDs))
	for _, id := range optionIDs {
		if chosen[id] {
			return Selection{}, errs.NewValueIsInvalidErrorWithCause(
				"variation", fmt.Errorf("option %s selected twice", id))
		}
		chosen[id] = true
	}

	unitPrice := p.basePrice
	variations := make([]SelectedVariation, 0, len(optionIDs))
	for _, g := range p.groups {
		picked := 0
		for _, o := range g.options {
			if !chosen[o.id] {
				continue
			}
			picked++
			if picked > 1 {
				return Selection{}, errs.NewValueIsInvalidErrorWithCause(
					"variation", fmt.Errorf("more than one option selected in group %q", g.name))
			}
			delete(chosen, o.id)
			unitPrice = unitPrice.Add(o.priceAdjustment)
			variations = append(variations, SelectedVariation{
				GroupID:         g.id,
				GroupName:       g.name,
				OptionID:        o.id,
				OptionName:      o.name,
				PriceAdjustment: o.priceAdjustment,
			})
		}
	}

	for id := range chosen {
		return Selection{}, errs.NewValueIsInvalidErrorWithCause(
			"variation", fmt.Errorf("option %s does not belong to product %q", id, p.name))
	}

	if unitPrice.IsNegative() {
		return Selection{}, errs.NewValueIsInvalidErrorWithCause(
			"variation", fmt.Errorf("unit price %s is negative", unitPrice))
	}

	return Selection{UnitPrice: unitPrice, Variations: variations}, nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setVenueID(venueID kernel.UUID) error {
	if err := venueID.Validate(); err != nil {
		return err
	}
	p.venueID = venueID
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setBasePrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("base price", fmt.Errorf("%s is negative", price))
	}
	p.basePrice = price
	return nil
}

func (p *Product) setGroups(groups []VariationGroup) error {
	seen := make(map[kernel.UUID]bool)
	for _, g := range groups {
		for _, o := range g.options {
			if seen[o.id] {
				return errs.NewValueIsInvalidErrorWithCause(
					"variation groups", fmt.Errorf("option %s appears twice", o.id))
			}
			seen[o.id] = true
		}
	}
	p.groups = append([]VariationGroup(nil), groups...)
	return nil
}
