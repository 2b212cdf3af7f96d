// Package redis stores customer carts and checkout locks in Redis so that
// every instance behind the load balancer sees the same session state.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"menuorder/internal/adapters/out/postgres/orderrepo"
	"menuorder/internal/core/domain/model/cart"
	"menuorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DefaultCartTTL is how long an untouched cart survives.
const DefaultCartTTL = 24 * time.Hour

type lineItemDTO struct {
	ProductID  uuid.UUID                `json:"productId"`
	Name       string                   `json:"name"`
	UnitPrice  decimal.Decimal          `json:"unitPrice"`
	Quantity   int                      `json:"quantity"`
	ImageRef   string                   `json:"imageRef,omitempty"`
	Variations []orderrepo.VariationDTO `json:"variations,omitempty"`
}

// CartRepository keeps one JSON document per session. Every save renews the TTL.
type CartRepository struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCartRepository creates the repository. Keys are "<prefix>cart:<venue>:<session>".
func NewCartRepository(client goredis.UniversalClient, prefix string, ttl time.Duration) *CartRepository {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &CartRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *CartRepository) key(venueID kernel.UUID, sessionID string) string {
	return fmt.Sprintf("%scart:%s:%s", r.prefix, venueID, sessionID)
}

func (r *CartRepository) Get(ctx context.Context, venueID kernel.UUID, sessionID string) (*cart.Cart, error) {
	raw, err := r.client.Get(ctx, r.key(venueID, sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return cart.NewCart(venueID, sessionID)
	}
	if err != nil {
		return nil, err
	}

	var dtos []lineItemDTO
	if err = json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items := make([]cart.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		productID, idErr := kernel.UUIDFromBytes(dto.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		variations, varErr := orderrepo.ToVariations(dto.Variations)
		if varErr != nil {
			return nil, varErr
		}
		item, itemErr := cart.NewLineItem(productID, dto.Name, kernel.NewMoney(dto.UnitPrice), dto.Quantity, dto.ImageRef, variations)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	return cart.RestoreCart(venueID, sessionID, items)
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsEmpty() {
		return r.Delete(ctx, c.VenueID(), c.SessionID())
	}

	lines := c.Items()
	dtos := make([]lineItemDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, lineItemDTO{
			ProductID:  line.ProductID().Bytes(),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice().Decimal(),
			Quantity:   line.Quantity(),
			ImageRef:   line.ImageRef(),
			Variations: orderrepo.FromVariations(line.Variations()),
		})
	}
	raw, err := json.Marshal(dtos)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(c.VenueID(), c.SessionID()), raw, r.ttl).Err()
}

func (r *CartRepository) Delete(ctx context.Context, venueID kernel.UUID, sessionID string) error {
	return r.client.Del(ctx, r.key(venueID, sessionID)).Err()
}
