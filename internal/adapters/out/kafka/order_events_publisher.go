// Package kafka publishes order events. Messages are JSON, keyed by order id
// so every event of one order lands on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"repair/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// EventTypeStatusChanged is the "type" header of status change messages.
const EventTypeStatusChanged = "order.status_changed"

// StatusChangedMessage is the wire form of ports.OrderStatusChanged.
type StatusChangedMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	Number     string    `json:"order_number"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newStatusChangedMessage(event ports.OrderStatusChanged) StatusChangedMessage {
	return StatusChangedMessage{
		Type:       EventTypeStatusChanged,
		OrderID:    event.OrderID.String(),
		Number:     event.Number,
		From:       event.From.String(),
		To:         event.To.String(),
		ActorID:    event.ActorID.String(),
		OccurredAt: event.OccurredAt.UTC(),
	}
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderEventsPublisher struct {
	writer MessageWriter
}

var _ ports.OrderEventPublisher = (*OrderEventsPublisher)(nil)

// NewWriter builds a writer for topic that waits for the leader only.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

func NewOrderEventsPublisher(writer MessageWriter) *OrderEventsPublisher {
	return &OrderEventsPublisher{writer: writer}
}

func (p *OrderEventsPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	value, err := json.Marshal(newStatusChangedMessage(event))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(EventTypeStatusChanged)},
		},
	}
	injectTraceContext(ctx, &msg.Headers)

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *OrderEventsPublisher) Close() error {
	return p.writer.Close()
}

// headerCarrier adapts kafka headers to the OpenTelemetry propagator.
type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

var _ propagation.TextMapCarrier = headerCarrier{}

func injectTraceContext(ctx context.Context, headers *[]kafka.Header) {
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{headers: headers})
}
