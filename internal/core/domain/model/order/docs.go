// Package order models a repair order: the item a client hands in at one
// pickup point, the service that diagnoses and repairs it, and the pickup
// point where it is collected.
//
// The lifecycle is a forward-only graph:
//
//	created -> received -> sent_to_service -> diagnosing -> price_proposed
//	price_proposed -> confirmed | rejected*
//	confirmed -> in_work -> ready -> ready_for_pickup -> delivered*
//
// (* terminal). Status.TransitionTo enforces the graph, Payload enforces the
// per-edge field allow-list, and Order.Transition applies both together with
// the timestamps attached to some edges. Who may take an edge is decided by
// the order access policy in the services package, not here.
package order
