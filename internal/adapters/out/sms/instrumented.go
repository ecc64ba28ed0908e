package sms

import (
	"context"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedNotifier counts deliveries by outcome.
type InstrumentedNotifier struct {
	next     ports.Notifier
	outcomes *prometheus.CounterVec
}

var _ ports.Notifier = (*InstrumentedNotifier)(nil)

func NewInstrumentedNotifier(next ports.Notifier, outcomes *prometheus.CounterVec) *InstrumentedNotifier {
	return &InstrumentedNotifier{next: next, outcomes: outcomes}
}

func (n *InstrumentedNotifier) Send(ctx context.Context, phone kernel.PhoneNumber, message string) error {
	err := n.next.Send(ctx, phone, message)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	n.outcomes.WithLabelValues(outcome).Inc()
	return err
}
