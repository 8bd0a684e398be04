// Package queries contains read-only operations that retrieve system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database, deriving order status from the lifecycle timestamps exactly
// the way the domain does.
package queries
