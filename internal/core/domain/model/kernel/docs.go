// Package kernel holds the shared value objects of the repair marketplace:
// identifiers, phone numbers and geographic points.
//
// Every type here is immutable and carries a constructor guard, so a zero
// value fails Validate and cannot slip into an aggregate unnoticed.
package kernel
