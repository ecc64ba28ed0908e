package commands

import (
	"errors"
	"strings"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

var ErrLeaveReviewCommandIsNotConstructed = errors.New(
	"LeaveReviewCommand must be created via NewLeaveReviewCommand constructor",
)

// LeaveReviewCommand rates the service that handled a delivered order.
type LeaveReviewCommand struct {
	principal actor.Principal
	orderID   kernel.UUID
	rating    serviceprofile.Rating
	text      string

	guard guard.ConstructorGuard
}

func NewLeaveReviewCommand(
	principal actor.Principal,
	orderID kernel.UUID,
	rating int,
	text string,
) (LeaveReviewCommand, error) {
	r := serviceprofile.Rating(rating)
	text = strings.TrimSpace(text)

	var textErr error
	if len(text) > serviceprofile.MaxReviewTextLength {
		textErr = errs.NewValueIsOutOfRangeError("text", len(text), 0, serviceprofile.MaxReviewTextLength)
	}
	if err := errors.Join(principal.Validate(), orderID.Validate(), r.Validate(), textErr); err != nil {
		return LeaveReviewCommand{}, err
	}
	return LeaveReviewCommand{
		principal: principal,
		orderID:   orderID,
		rating:    r,
		text:      text,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c LeaveReviewCommand) Validate() error {
	return c.guard.Validate(ErrLeaveReviewCommandIsNotConstructed)
}

func (c LeaveReviewCommand) Principal() actor.Principal { return c.principal }

func (c LeaveReviewCommand) OrderID() kernel.UUID { return c.orderID }

func (c LeaveReviewCommand) Rating() serviceprofile.Rating { return c.rating }

func (c LeaveReviewCommand) Text() string { return c.text }
