package ports

import (
	"context"

	"repair/internal/core/domain/model/kernel"
)

// Notifier delivers a text message to a phone. A returned error means the
// message was not accepted.
type Notifier interface {
	Send(ctx context.Context, phone kernel.PhoneNumber, message string) error
}
