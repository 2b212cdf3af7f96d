package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/domain/model/venue"
	"menuorder/internal/pkg/errs"
)

type State int

const (
	Composing State = iota + 1
	Submitted
)

func (s State) String() string {
	switch s {
	case Composing:
		return "composing"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var (
	ErrCheckoutIsNotConstructed = errors.New("Checkout must be created via NewCheckout constructor")
	ErrAlreadySubmitted         = errors.New("checkout is already submitted")
)

// Checkout collects what the customer enters at the checkout screen and
// validates it against the venue.
type Checkout struct {
	venue       *venue.Venue
	tableNumber string
	kitchenNote string
	state       State
	order       *order.Order

	isConstructed bool
}

func NewCheckout(v *venue.Venue) (*Checkout, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &Checkout{venue: v, state: Composing, isConstructed: true}, nil
}

func (c *Checkout) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCheckoutIsNotConstructed
	}
	return nil
}

func (c *Checkout) State() State {
	return c.state
}

func (c *Checkout) TableNumber() string {
	return c.tableNumber
}

func (c *Checkout) KitchenNote() string {
	return c.kitchenNote
}

// Order returns the submitted order, or nil while composing.
func (c *Checkout) Order() *order.Order {
	return c.order
}

func (c *Checkout) SetTableNumber(tableNumber string) {
	c.tableNumber = strings.TrimSpace(tableNumber)
}

func (c *Checkout) SetKitchenNote(note string) {
	c.kitchenNote = strings.TrimSpace(note)
}

// CanSubmit checks everything Submit requires without changing any state.
// All violations are joined so the caller can show them at once.
func (c *Checkout) CanSubmit(basket *cart.Cart) error {
	if c.state == Submitted {
		return ErrAlreadySubmitted
	}

	var errList []error
	switch {
	case c.tableNumber == "":
		errList = append(errList, errs.NewValueIsRequiredError("tableNumber"))
	case !c.venue.HasTable(c.tableNumber):
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"tableNumber",
			fmt.Errorf("%q is not a table of this venue (1-%d)", c.tableNumber, c.venue.TableCount()),
		))
	}
	if n := utf8.RuneCountInString(c.kitchenNote); n > order.MaxKitchenNoteLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("kitchenNote length", n, 0, order.MaxKitchenNoteLength))
	}
	switch {
	case basket.Validate() != nil:
		errList = append(errList, basket.Validate())
	case basket.IsEmpty():
		errList = append(errList, errs.NewValueIsRequiredError("cart items"))
	case !basket.VenueID().IsEqual(c.venue.ID()):
		errList = append(errList, errs.NewValueIsInvalidError("cart belongs to another venue"))
	}
	return errors.Join(errList...)
}

// Submit snapshots the cart into a pending order with the given id and
// creation time, then clears the cart. On error neither the cart nor the
// checkout changes.
func (c *Checkout) Submit(basket *cart.Cart, id kernel.UUID, now time.Time) (*order.Order, error) {
	if err := c.CanSubmit(basket); err != nil {
		return nil, err
	}

	lines := basket.Items()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(
			line.ProductID(),
			line.Key(),
			line.Name(),
			line.UnitPrice(),
			line.Quantity(),
			line.ImageRef(),
			line.Variations(),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(id, c.venue.ID(), c.tableNumber, c.kitchenNote, items, now)
	if err != nil {
		return nil, err
	}

	basket.Clear()
	c.order = o
	c.state = Submitted
	return o, nil
}
