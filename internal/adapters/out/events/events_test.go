package events_test

import (
	"context"
	"errors"
	"testing"

	"menuorder/internal/adapters/out/events"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, changes ...ports.OrderChange) error {
	args := m.Called(ctx, changes)
	return args.Error(0)
}

func change(venueID kernel.UUID) ports.OrderChange {
	return ports.OrderChange{
		Kind:    ports.OrderStatusChanged,
		VenueID: venueID,
		OrderID: kernel.NewOrderedUUID(),
		Status:  order.Ready,
	}
}

func TestHub(t *testing.T) {
	ctx := context.Background()

	t.Run("should deliver only the venue's changes", func(t *testing.T) {
		hub := events.NewHub(4, nil)
		venueA, venueB := kernel.NewUUID(), kernel.NewUUID()
		subA := hub.Subscribe(venueA)
		defer subA.Close()
		subB := hub.Subscribe(venueB)
		defer subB.Close()

		c := change(venueA)
		require.NoError(t, hub.Publish(ctx, c))

		assert.Equal(t, c, <-subA.C())
		assert.Empty(t, subB.C())
	})

	t.Run("should drop changes for a full subscriber", func(t *testing.T) {
		hub := events.NewHub(1, nil)
		venueID := kernel.NewUUID()
		sub := hub.Subscribe(venueID)
		defer sub.Close()

		first := change(venueID)
		require.NoError(t, hub.Publish(ctx, first, change(venueID), change(venueID)))

		assert.Equal(t, first, <-sub.C())
		assert.Empty(t, sub.C())
	})

	t.Run("should close channel and forget subscriber", func(t *testing.T) {
		hub := events.NewHub(1, nil)
		venueID := kernel.NewUUID()
		sub := hub.Subscribe(venueID)
		require.Equal(t, 1, hub.Subscribers(venueID))

		sub.Close()
		sub.Close()

		_, open := <-sub.C()
		assert.False(t, open)
		assert.Zero(t, hub.Subscribers(venueID))
		require.NoError(t, hub.Publish(ctx, change(venueID)))
	})
}

func TestFanout(t *testing.T) {
	ctx := context.Background()
	c := change(kernel.NewUUID())

	t.Run("should publish to all and join errors", func(t *testing.T) {
		failing := new(MockPublisher)
		failing.On("Publish", ctx, []ports.OrderChange{c}).Return(errors.New("kafka down")).Once()
		healthy := new(MockPublisher)
		healthy.On("Publish", ctx, []ports.OrderChange{c}).Return(nil).Once()

		err := events.Fanout{failing, nil, healthy}.Publish(ctx, c)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka down")
		failing.AssertExpectations(t)
		healthy.AssertExpectations(t)
	})
}

func TestStamped(t *testing.T) {
	ctx := context.Background()
	own := change(kernel.NewUUID())
	foreign := change(kernel.NewUUID())
	foreign.Origin = "other"

	next := new(MockPublisher)
	next.On("Publish", ctx, mock.MatchedBy(func(changes []ports.OrderChange) bool {
		return len(changes) == 2 && changes[0].Origin == "me" && changes[1].Origin == "other"
	})).Return(nil).Once()

	require.NoError(t, events.Stamped{Origin: "me", Next: next}.Publish(ctx, own, foreign))
	assert.Empty(t, own.Origin, "caller's value is not modified")
	next.AssertExpectations(t)
}
