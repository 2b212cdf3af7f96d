// Package kafka publishes committed order changes to a Kafka topic for
// consumers outside the service (kitchen displays, analytics).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"menuorder/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

const DefaultTopic = "order.changed"

// messageWriter is the part of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one JSON message per change. Messages are keyed by
// order id, or by venue id for venue-wide changes, so that the changes of
// one order stay in order on one partition.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func newPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, changes ...ports.OrderChange) error {
	if len(changes) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(changes))
	for _, change := range changes {
		value, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("encode order change: %w", err)
		}
		key := change.OrderID.String()
		if change.Kind == ports.OrdersCleared {
			key = change.VenueID.String()
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(key),
			Value: value,
			Time:  change.OccurredAt,
			Headers: []kafkago.Header{
				{Key: "kind", Value: []byte(change.Kind)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write order changes: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
