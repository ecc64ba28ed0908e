// Package services holds domain rules that span more than one aggregate.
//
// OrderAccessPolicy decides who may see and change an order. It combines the
// caller's role with its relationship to the order (client, assigned service,
// receiving or delivering pickup point) and never looks at storage.
package services
