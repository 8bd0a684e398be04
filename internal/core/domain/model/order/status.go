package order

import (
	"fmt"

	"deliverus/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is always derived
// from the lifecycle timestamps (see Order.Status) and is never stored or
// written independently, so the timestamps remain the single source of truth.
//
// State progression:
//
//	Pending ──> InProcess ──> Sent ──> Delivered
//
// Transitions are one-way and each stage stamps exactly one timestamp.
// Orders are editable and deletable only while Pending.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: no lifecycle timestamp is set.
	// This is the only status in which an order can be edited or deleted.
	Pending

	// InProcess indicates the restaurant confirmed the order (startedAt set).
	InProcess

	// Sent indicates the order left the restaurant (sentAt set).
	Sent

	// Delivered indicates the order reached the customer (deliveredAt set).
	// This is a final state with no further transitions allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
// The string forms double as API filter values.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InProcess: "in process",
		Sent:      "sent",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		InProcess: "in process",
		Sent:      "sent",
		Delivered: "delivered",
	}
}

// ParseStatus converts a filter string ("pending", "in process", "sent",
// "delivered") to its Status value. Returns an error for anything else.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, InProcess, Sent, Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsEditable reports whether orders in this status accept edits and deletion.
func (s Status) IsEditable() bool {
	return s == Pending
}
