package order

import (
	"errors"
	"slices"
	"strings"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is the frozen copy of a cart line stored with an order.
type Item struct {
	productID  kernel.UUID
	key        string
	name       string
	unitPrice  kernel.Money
	quantity   int
	imageRef   string
	variations []catalog.SelectedVariation

	guard guard.ConstructorGuard
}

// NewItem validates and copies the given line. Unlike a cart line, an order
// item never normalizes its quantity: a snapshot must match what was shown.
func NewItem(
	productID kernel.UUID,
	key string,
	name string,
	unitPrice kernel.Money,
	quantity int,
	imageRef string,
	variations []catalog.SelectedVariation,
) (Item, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(key) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("key"))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidError("unit price is negative"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, nil))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productID:  productID,
		key:        key,
		name:       name,
		unitPrice:  unitPrice,
		quantity:   quantity,
		imageRef:   imageRef,
		variations: slices.Clone(variations),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) Key() string             { return i.key }
func (i Item) Name() string            { return i.name }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) ImageRef() string        { return i.imageRef }

func (i Item) Variations() []catalog.SelectedVariation {
	return slices.Clone(i.variations)
}

func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i Item) clone() Item {
	i.variations = slices.Clone(i.variations)
	return i
}
