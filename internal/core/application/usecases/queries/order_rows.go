package queries

import (
	"context"
	"encoding/json"
	"time"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse is the console view of one order.
type OrderResponse struct {
	ID          kernel.UUID
	TableNumber string
	KitchenNote string
	Status      order.Status
	Total       kernel.Money
	ItemCount   int
	CreatedAt   time.Time
	Items       []OrderItem
}

type OrderItem struct {
	ProductID  kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
	Subtotal   kernel.Money
	ImageRef   string
	Variations []catalog.SelectedVariation
}

// variationRow mirrors the JSON stored in order_items.variations.
type variationRow struct {
	GroupID         uuid.UUID       `json:"groupId"`
	GroupName       string          `json:"groupName"`
	OptionID        uuid.UUID       `json:"optionId"`
	OptionName      string          `json:"optionName"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

const selectOrders = `
	SELECT
		id,
		table_number,
		kitchen_note,
		status,
		total,
		item_count,
		created_at
	FROM orders`

// scanOrders runs an orders select and loads the items of every row.
func scanOrders(ctx context.Context, db *gorm.DB, sql string, values ...any) ([]OrderResponse, error) {
	rows, err := db.WithContext(ctx).Raw(sql, values...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			resp   OrderResponse
			id     uuid.UUID
			status int
			total  decimal.Decimal
		)
		if err = rows.Scan(&id, &resp.TableNumber, &resp.KitchenNote, &status, &total, &resp.ItemCount, &resp.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.Total = kernel.NewMoney(total)
		resp.CreatedAt = resp.CreatedAt.UTC()

		index[id] = len(orders)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}
	if err = loadItems(ctx, db, orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func loadItems(ctx context.Context, db *gorm.DB, orders []OrderResponse, index map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			name,
			unit_price,
			quantity,
			image_ref,
			variations
		FROM order_items
		WHERE order_id IN ?
		ORDER BY position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       OrderItem
			orderID    uuid.UUID
			productID  uuid.UUID
			unitPrice  decimal.Decimal
			variations []byte
		)
		if err = rows.Scan(&orderID, &productID, &item.Name, &unitPrice, &item.Quantity, &item.ImageRef, &variations); err != nil {
			return err
		}

		pid, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return idErr
		}
		item.ProductID = pid
		item.UnitPrice = kernel.NewMoney(unitPrice)
		item.Subtotal = item.UnitPrice.Mul(item.Quantity)
		if item.Variations, err = decodeVariations(variations); err != nil {
			return err
		}

		i, ok := index[orderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
	}
	return rows.Err()
}

func decodeVariations(raw []byte) ([]catalog.SelectedVariation, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var stored []variationRow
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	variations := make([]catalog.SelectedVariation, 0, len(stored))
	for _, v := range stored {
		groupID, err := kernel.UUIDFromBytes(v.GroupID[:])
		if err != nil {
			return nil, err
		}
		optionID, err := kernel.UUIDFromBytes(v.OptionID[:])
		if err != nil {
			return nil, err
		}
		variations = append(variations, catalog.SelectedVariation{
			GroupID:         groupID,
			GroupName:       v.GroupName,
			OptionID:        optionID,
			OptionName:      v.OptionName,
			PriceAdjustment: kernel.NewMoney(v.PriceAdjustment),
		})
	}
	return variations, nil
}
