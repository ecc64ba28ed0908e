package sms

import (
	"context"
	"fmt"
	"io"
	"sync"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"
)

// ConsoleNotifier writes messages to w instead of sending them. It is meant
// for development without an SMS provider and never goes through the logger.
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Send(_ context.Context, phone kernel.PhoneNumber, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "SMS to %s: %s\n", phone.String(), message)
	return err
}
