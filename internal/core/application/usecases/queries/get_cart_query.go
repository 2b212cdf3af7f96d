package queries

import (
	"errors"
	"strings"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads the cart of one customer session.
type GetCartQuery struct {
	venueID   kernel.UUID
	sessionID string

	guard guard.ConstructorGuard
}

func NewGetCartQuery(venueID kernel.UUID, sessionID string) (GetCartQuery, error) {
	sessionID = strings.TrimSpace(sessionID)
	var sessionErr error
	if sessionID == "" {
		sessionErr = errs.NewValueIsRequiredError("sessionID")
	}
	if err := errors.Join(venueID.Validate(), sessionErr); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{venueID: venueID, sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) VenueID() kernel.UUID { return q.venueID }
func (q GetCartQuery) SessionID() string    { return q.sessionID }

// GetCartQueryResponse is the cart with its derived figures. A session
// without a cart gets an empty one.
type GetCartQueryResponse struct {
	Items     []CartItem
	Total     kernel.Money
	ItemCount int
}

type CartItem struct {
	Key        string
	ProductID  kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
	Subtotal   kernel.Money
	ImageRef   string
	Variations []catalog.SelectedVariation
}
