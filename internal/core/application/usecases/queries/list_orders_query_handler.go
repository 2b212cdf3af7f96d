package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads orders straight from the database.
// Ties on creation time are broken by the time-ordered id.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := query.Statuses()
	if len(statuses) == 0 {
		return scanOrders(ctx, h.db,
			selectOrders+` WHERE venue_id = ? ORDER BY created_at DESC, id DESC`,
			query.VenueID().Bytes(),
		)
	}

	codes := make([]int, 0, len(statuses))
	for _, status := range statuses {
		codes = append(codes, int(status))
	}
	return scanOrders(ctx, h.db,
		selectOrders+` WHERE venue_id = ? AND status IN ? ORDER BY created_at DESC, id DESC`,
		query.VenueID().Bytes(), codes,
	)
}
