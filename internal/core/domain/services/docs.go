// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the order management system.
// It implements complex business workflows that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - OrderPricer: A domain service that validates requested product lines
//     against the catalog and computes order totals and shipping costs
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
