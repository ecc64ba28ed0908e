package order

import (
	"fmt"

	"repair/internal/pkg/errs"
)

// Status is a node of the order lifecycle graph.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	StatusCreated
	StatusReceived
	StatusSentToService
	StatusDiagnosing
	StatusPriceProposed
	StatusConfirmed
	StatusRejected
	StatusInWork
	StatusReady
	StatusReadyForPickup
	StatusDelivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusCreated:        "created",
		StatusReceived:       "received",
		StatusSentToService:  "sent_to_service",
		StatusDiagnosing:     "diagnosing",
		StatusPriceProposed:  "price_proposed",
		StatusConfirmed:      "confirmed",
		StatusRejected:       "rejected",
		StatusInWork:         "in_work",
		StatusReady:          "ready",
		StatusReadyForPickup: "ready_for_pickup",
		StatusDelivered:      "delivered",
	}
}

// getTransitions lists the outgoing edges of every non-terminal status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no edges
	return map[Status][]Status{
		StatusCreated:        {StatusReceived},
		StatusReceived:       {StatusSentToService},
		StatusSentToService:  {StatusDiagnosing},
		StatusDiagnosing:     {StatusPriceProposed},
		StatusPriceProposed:  {StatusConfirmed, StatusRejected},
		StatusConfirmed:      {StatusInWork},
		StatusInWork:         {StatusReady},
		StatusReady:          {StatusReadyForPickup},
		StatusReadyForPickup: {StatusDelivered},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusCreated, StatusReceived, StatusSentToService, StatusDiagnosing, StatusPriceProposed,
		StatusConfirmed, StatusRejected, StatusInWork, StatusReady, StatusReadyForPickup, StatusDelivered,
	}
}

// ParseStatus converts a wire/storage name into a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range AllStatuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no edge leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusDelivered
}

// Next returns the statuses reachable from s in one step.
func (s Status) Next() []Status {
	return getTransitions()[s]
}

// CanTransitionTo reports whether s -> target is an edge of the graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range s.Next() {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if s -> target is an edge, or an
// InvalidTransitionError naming both statuses.
//
// Example:
//
//	next, err := order.StatusCreated.TransitionTo(order.StatusReceived)
//	// next == StatusReceived, err == nil
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s, target)
	}
	return target, nil
}
