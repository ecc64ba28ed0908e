package queries

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to the caller, newest first.
//
// Example:
//
//	status := order.StatusReceived
//	query, err := queries.NewListOrdersQuery(principal, &status)
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	principal actor.Principal
	status    *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. A nil status lists every status.
func NewListOrdersQuery(principal actor.Principal, status *order.Status) (ListOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	return ListOrdersQuery{principal: principal, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Principal() actor.Principal { return q.principal }

func (q ListOrdersQuery) Status() *order.Status { return q.status }
