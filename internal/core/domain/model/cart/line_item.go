package cart

import (
	"errors"
	"slices"
	"strings"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

// keySeparator joins the parts of a composite key. UUIDs never contain it
// and it is safe inside URL paths.
const keySeparator = "."

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a value: methods that change it return a new copy.
type LineItem struct {
	productID  kernel.UUID
	key        string
	name       string
	unitPrice  kernel.Money
	quantity   int
	imageRef   string
	variations []catalog.SelectedVariation

	guard guard.ConstructorGuard
}

// NewLineItem builds a line item and derives its composite key.
// A quantity below 1 is normalized to 1.
func NewLineItem(
	productID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	imageRef string,
	variations []catalog.SelectedVariation,
) (LineItem, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidError("unit price is negative"))
	}
	if err := errors.Join(errList...); err != nil {
		return LineItem{}, err
	}

	if quantity < 1 {
		quantity = 1
	}

	variations = slices.Clone(variations)
	return LineItem{
		productID:  productID,
		key:        CompositeKey(productID, variations),
		name:       name,
		unitPrice:  unitPrice,
		quantity:   quantity,
		imageRef:   imageRef,
		variations: variations,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// CompositeKey is "<productID>" or "<productID>.<optionID>.<optionID>..."
// with option IDs sorted, so selection order never matters.
func CompositeKey(productID kernel.UUID, variations []catalog.SelectedVariation) string {
	parts := make([]string, 0, len(variations))
	for _, v := range variations {
		parts = append(parts, v.OptionID.String())
	}
	slices.Sort(parts)
	return strings.Join(append([]string{productID.String()}, parts...), keySeparator)
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ProductID() kernel.UUID  { return i.productID }
func (i LineItem) Key() string             { return i.key }
func (i LineItem) Name() string            { return i.name }
func (i LineItem) UnitPrice() kernel.Money { return i.unitPrice }
func (i LineItem) Quantity() int           { return i.quantity }
func (i LineItem) ImageRef() string        { return i.imageRef }

// Variations returns a copy of the selected variations.
func (i LineItem) Variations() []catalog.SelectedVariation {
	return slices.Clone(i.variations)
}

// Subtotal is unitPrice * quantity.
func (i LineItem) Subtotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i LineItem) withQuantity(quantity int) LineItem {
	i.quantity = quantity
	i.variations = slices.Clone(i.variations)
	return i
}
