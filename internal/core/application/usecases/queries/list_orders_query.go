package queries

import (
	"errors"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders of a venue, newest first, optionally
// restricted to some statuses. No status means all orders.
//
// Example:
//
//	query, _ := NewListOrdersQuery(venueID, order.Pending, order.Preparing)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	venueID  kernel.UUID
	statuses []order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(venueID kernel.UUID, statuses ...order.Status) (ListOrdersQuery, error) {
	validations := []error{venueID.Validate()}
	for _, status := range statuses {
		validations = append(validations, status.Validate())
	}
	if err := errors.Join(validations...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		venueID:  venueID,
		statuses: append([]order.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) VenueID() kernel.UUID {
	return q.venueID
}

func (q ListOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}
