package serviceprofile

import (
	"errors"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

const MaxReviewTextLength = 2000

// ErrReviewIsNotConstructed is returned for a Review built without a constructor.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Rating is a score from 1 to 5.
type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

func (r Rating) Validate() error {
	if r < MinRating || r > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", int(r), int(MinRating), int(MaxRating))
	}
	return nil
}

// Review is the client's verdict on a delivered order. One order has at most one.
type Review struct {
	id        kernel.UUID
	orderID   kernel.UUID
	clientID  kernel.UUID
	serviceID kernel.UUID
	rating    Rating
	text      string
	createdAt time.Time

	guard guard.ConstructorGuard
}

func NewReview(id, orderID, clientID, serviceID kernel.UUID, rating Rating, text string, now time.Time) (*Review, error) {
	text = strings.TrimSpace(text)

	var problems []error
	for name, v := range map[string]kernel.UUID{
		"id":         id,
		"order_id":   orderID,
		"client_id":  clientID,
		"service_id": serviceID,
	} {
		if err := v.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(name, err))
		}
	}
	problems = append(problems, rating.Validate())
	if len(text) > MaxReviewTextLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("text", len(text), 0, MaxReviewTextLength))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Review{
		id:        id,
		orderID:   orderID,
		clientID:  clientID,
		serviceID: serviceID,
		rating:    rating,
		text:      text,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Review) Validate() error {
	if r == nil {
		return ErrReviewIsNotConstructed
	}
	return r.guard.Validate(ErrReviewIsNotConstructed)
}

func (r *Review) ID() kernel.UUID { return r.id }

func (r *Review) OrderID() kernel.UUID { return r.orderID }

func (r *Review) ClientID() kernel.UUID { return r.clientID }

func (r *Review) ServiceID() kernel.UUID { return r.serviceID }

func (r *Review) Rating() Rating { return r.rating }

func (r *Review) Text() string { return r.text }

func (r *Review) CreatedAt() time.Time { return r.createdAt }
