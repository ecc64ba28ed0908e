package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

const (
	// DefaultCodeTTL is how long a verification code stays valid.
	DefaultCodeTTL = 5 * time.Minute
	codeDigits     = 4
)

// CodeKey is the code store key for a phone. Every tier adds its own prefix.
func CodeKey(phone kernel.PhoneNumber) string {
	return phone.String()
}

// RequestCodeCommandHandler issues a code, stores it and sends it by SMS.
// If sending fails the code is removed again, so it can never be used.
type RequestCodeCommandHandler struct {
	store    ports.CodeStore
	notifier ports.Notifier
	ttl      time.Duration
	random   io.Reader
	log      *slog.Logger
}

func NewRequestCodeCommandHandler(
	store ports.CodeStore,
	notifier ports.Notifier,
	ttl time.Duration,
	log *slog.Logger,
) RequestCodeCommandHandler {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	return RequestCodeCommandHandler{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		random:   rand.Reader,
		log:      log.With("component", "request_code"),
	}
}

// WithRandom replaces the code source; tests use it for predictable codes.
func (h RequestCodeCommandHandler) WithRandom(r io.Reader) RequestCodeCommandHandler {
	h.random = r
	return h
}

func (h RequestCodeCommandHandler) Handle(ctx context.Context, command RequestCodeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	code, err := generateCode(h.random)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	key := CodeKey(command.Phone())
	if err = h.store.Set(ctx, key, code, h.ttl); err != nil {
		return err
	}

	message := fmt.Sprintf("Your verification code: %s", code)
	if err = h.notifier.Send(ctx, command.Phone(), message); err != nil {
		if delErr := h.store.Delete(ctx, key); delErr != nil {
			h.log.WarnContext(ctx, "failed to discard unsent code",
				"phone", command.Phone().Masked(), "error", delErr)
		}
		return errs.NewUpstreamUnavailableError("sms", err)
	}

	h.log.InfoContext(ctx, "verification code sent", "phone", command.Phone().Masked())
	return nil
}

func generateCode(r io.Reader) (string, error) {
	n, err := rand.Int(r, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
