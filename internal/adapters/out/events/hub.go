// Package events delivers committed order changes: to live admin consoles
// through the in-process Hub, and to other publishers through Fanout.
package events

import (
	"context"
	"log/slog"
	"sync"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/ports"
)

// DefaultSubscriptionBuffer is the per-subscriber queue length.
const DefaultSubscriptionBuffer = 64

// Hub fans order changes out to the subscribers of each venue. A subscriber
// that does not keep up loses changes instead of blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[kernel.UUID]map[*Subscription]struct{}
	buffer int
	logger *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriptionBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[kernel.UUID]map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscription receives the changes of one venue until Close.
type Subscription struct {
	hub     *Hub
	venueID kernel.UUID
	ch      chan ports.OrderChange
	once    sync.Once
}

// C is closed when the subscription is closed.
func (s *Subscription) C() <-chan ports.OrderChange {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if venueSubs, ok := s.hub.subs[s.venueID]; ok {
			delete(venueSubs, s)
			if len(venueSubs) == 0 {
				delete(s.hub.subs, s.venueID)
			}
		}
		close(s.ch)
	})
}

func (h *Hub) Subscribe(venueID kernel.UUID) *Subscription {
	sub := &Subscription{
		hub:     h,
		venueID: venueID,
		ch:      make(chan ports.OrderChange, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	venueSubs, ok := h.subs[venueID]
	if !ok {
		venueSubs = make(map[*Subscription]struct{})
		h.subs[venueID] = venueSubs
	}
	venueSubs[sub] = struct{}{}
	return sub
}

// Subscribers returns the number of open subscriptions of the venue.
func (h *Hub) Subscribers(venueID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[venueID])
}

// Publish never blocks and never fails.
func (h *Hub) Publish(_ context.Context, changes ...ports.OrderChange) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, change := range changes {
		for sub := range h.subs[change.VenueID] {
			select {
			case sub.ch <- change:
			default:
				h.logger.Warn("order feed subscriber is full, change dropped",
					slog.String("venue_id", change.VenueID.String()),
					slog.String("kind", string(change.Kind)),
				)
			}
		}
	}
	return nil
}
