package queries

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery computes the dashboard figures of a venue. "Today"
// is the calendar day in the venue timezone.
type GetOrderStatsQuery struct {
	venueID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery(venueID kernel.UUID) (GetOrderStatsQuery, error) {
	if err := venueID.Validate(); err != nil {
		return GetOrderStatsQuery{}, err
	}
	return GetOrderStatsQuery{venueID: venueID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

func (q GetOrderStatsQuery) VenueID() kernel.UUID {
	return q.venueID
}

// GetOrderStatsQueryResponse carries the figures and the currency to show them in.
type GetOrderStatsQueryResponse struct {
	order.Stats
	CurrencySymbol string
}
