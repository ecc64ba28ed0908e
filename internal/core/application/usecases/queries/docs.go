// Package queries contains the read side. Handlers read straight from the
// database with SQL and return flat views; authorization is applied with the
// same policy the commands use.
package queries
