// Package errs holds the typed errors of the repair marketplace and their
// classification.
//
// Every error type wraps a sentinel, so callers test with errors.Is:
//   - value errors (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange)
//     come from constructors and command validation;
//   - ErrObjectNotFound comes from repositories and queries;
//   - ErrForbidden, ErrInvalidTransition and ErrConflict come from the order
//     lifecycle and the catalogs;
//   - ErrUnauthenticated covers bad tokens, unknown or disabled accounts and
//     failed code checks;
//   - ErrUpstreamUnavailable marks storage, cache or SMS outages.
//
// KindOf maps any of them, wrapped or joined, to a Kind. The HTTP adapter
// picks its status code from the Kind and nothing else.
package errs
