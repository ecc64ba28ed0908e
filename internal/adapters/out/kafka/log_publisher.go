package kafka

import (
	"context"
	"log/slog"

	"repair/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// LogPublisher stands in for the broker when KAFKA_HOST is not set.
type LogPublisher struct {
	log *slog.Logger
}

var _ ports.OrderEventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With("component", "order_events")}
}

func (p *LogPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	p.log.InfoContext(ctx, EventTypeStatusChanged,
		"order_id", event.OrderID.String(),
		"number", event.Number,
		"from", event.From.String(),
		"to", event.To.String(),
		"actor_id", event.ActorID.String())
	return nil
}

// InstrumentedPublisher counts transitions and publish outcomes before
// delegating.
type InstrumentedPublisher struct {
	next        ports.OrderEventPublisher
	transitions *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
}

var _ ports.OrderEventPublisher = (*InstrumentedPublisher)(nil)

func NewInstrumentedPublisher(
	next ports.OrderEventPublisher,
	transitions, outcomes *prometheus.CounterVec,
) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, transitions: transitions, outcomes: outcomes}
}

func (p *InstrumentedPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	p.transitions.WithLabelValues(event.From.String(), event.To.String()).Inc()

	err := p.next.PublishStatusChanged(ctx, event)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.outcomes.WithLabelValues(outcome).Inc()
	return err
}
