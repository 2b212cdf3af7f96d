package queries

import (
	"context"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderStatsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetOrderStatsQueryHandler creates the handler. A nil now uses time.Now.
func NewGetOrderStatsQueryHandler(db *gorm.DB, now func() time.Time) GetOrderStatsQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetOrderStatsQueryHandler{db: db, now: now}
}

func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	var venueRow struct {
		CurrencySymbol string
		Timezone       string
	}
	result := h.db.WithContext(ctx).
		Raw(`SELECT currency_symbol, timezone FROM venues WHERE id = ?`, query.VenueID().Bytes()).
		Scan(&venueRow)
	if result.Error != nil {
		return GetOrderStatsQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderStatsQueryResponse{}, errs.NewObjectNotFoundError("venue", query.VenueID().String())
	}

	var err error
	loc := time.UTC
	if venueRow.Timezone != "" {
		if loc, err = time.LoadLocation(venueRow.Timezone); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			total,
			created_at
		FROM orders
		WHERE venue_id = ?
	`, query.VenueID().Bytes()).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	figures := make([]order.Figures, 0)
	for rows.Next() {
		var (
			status    int
			total     decimal.Decimal
			createdAt time.Time
		)
		if err = rows.Scan(&status, &total, &createdAt); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}
		figures = append(figures, order.Figures{
			Status:    order.Status(status),
			Total:     kernel.NewMoney(total),
			CreatedAt: createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return GetOrderStatsQueryResponse{
		Stats:          order.Summarize(figures, h.now(), loc),
		CurrencySymbol: venueRow.CurrencySymbol,
	}, nil
}
