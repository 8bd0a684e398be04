// Package order provides domain entities and business logic for order
// management in the food-delivery system. It implements the Order aggregate
// root with lifecycle management, derived status and line reconciliation.
//
// The package includes:
//   - Order: The aggregate root owning the header, totals, timestamps and lines
//   - Line: A product line with a price snapshotted at the moment it was added
//   - Status: The lifecycle state, always derived from the timestamps
//
// Key business rules:
//   - Orders progress one-way: pending -> in process -> sent -> delivered
//   - Each transition stamps exactly one timestamp, exactly once
//   - Orders can be edited or deleted only while pending
//   - Line replacement is always a full replace with freshly snapshotted prices
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
