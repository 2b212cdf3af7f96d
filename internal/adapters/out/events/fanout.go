package events

import (
	"context"
	"errors"

	"menuorder/internal/core/ports"
)

// Fanout publishes every change to all publishers, in order, and joins
// their errors. One failing publisher does not stop the others.
type Fanout []ports.OrderChangePublisher

func (f Fanout) Publish(ctx context.Context, changes ...ports.OrderChange) error {
	var errList []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, changes...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// Stamped sets Origin on every change that has none before passing it on.
// Instances use it to recognize their own changes coming back from the
// shared channel.
type Stamped struct {
	Origin string
	Next   ports.OrderChangePublisher
}

func (s Stamped) Publish(ctx context.Context, changes ...ports.OrderChange) error {
	stamped := make([]ports.OrderChange, len(changes))
	for i, c := range changes {
		if c.Origin == "" {
			c.Origin = s.Origin
		}
		stamped[i] = c
	}
	return s.Next.Publish(ctx, stamped...)
}
