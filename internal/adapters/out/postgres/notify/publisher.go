// Package notify shares order changes between service instances through
// PostgreSQL NOTIFY/LISTEN, so an admin console connected to one instance
// sees orders placed through another.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"menuorder/internal/core/ports"

	"gorm.io/gorm"
)

const DefaultChannel = "order_changed"

// Publisher sends each change as a NOTIFY payload.
type Publisher struct {
	db      *gorm.DB
	channel string
}

func NewPublisher(db *gorm.DB, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{db: db, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, changes ...ports.OrderChange) error {
	for _, change := range changes {
		payload, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("encode order change: %w", err)
		}
		if err = p.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", p.channel, string(payload)).Error; err != nil {
			return fmt.Errorf("notify %s: %w", p.channel, err)
		}
	}
	return nil
}
