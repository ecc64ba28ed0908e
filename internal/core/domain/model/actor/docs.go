// Package actor models the people who act on the marketplace: clients,
// repair services, pickup point operators and administrators.
//
// An Actor is created the first time a phone number passes code
// verification and is never deleted; administrators may deactivate it.
// A Principal is the per-request view of an actor, enriched with the
// pickup point or service profile it operates, and is what authorization
// decisions are made against.
package actor
