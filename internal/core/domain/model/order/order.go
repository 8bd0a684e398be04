package order

import (
	"errors"
	"fmt"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// MaxAddressLength is the maximum accepted length of a delivery address.
const MaxAddressLength = 255

// Order represents a customer order against a restaurant's catalog. It is the
// aggregate root owning the order header (address, computed totals, lifecycle
// timestamps) and its product lines.
//
// Order maintains these invariants:
//   - Customer, restaurant and order identifiers are valid and immutable
//   - The address is present and at most MaxAddressLength characters
//   - Lifecycle timestamps are stamped exactly once, in order: createdAt,
//     then startedAt (confirm), sentAt (send), deliveredAt (deliver); a
//     later-stage timestamp is never set while an earlier one is nil
//   - Status is always derived from the timestamps, never stored separately
//   - Lines and totals change only while the order is Pending, and a line
//     replacement is always a full replace of the line set
//
// The version field is an optimistic concurrency token maintained by the
// persistence layer: every successful header write increments it, and a write
// against a stale version fails instead of losing a concurrent update.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	address       string
	price         kernel.Money
	shippingCosts kernel.Money
	lines         []Line

	createdAt   time.Time
	startedAt   *time.Time
	sentAt      *time.Time
	deliveredAt *time.Time

	version int

	isConstructed bool
}

// NewOrder creates a new Pending order with no lines and zero totals.
// Lines and totals are applied afterwards via ApplyQuote, which keeps the
// pricing computation in one place for both the create and update paths.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the placing customer (immutable)
//   - restaurantID: the owning restaurant (immutable)
//   - address: delivery address (required, at most MaxAddressLength chars)
//   - createdAt: creation instant (immutable)
//
// Returns a validation error if any parameter is invalid; multiple
// violations are joined into a single error.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	address string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time business rules, but still verifying structural invariants:
// valid identifiers, a consistent timestamp ladder and a non-negative version.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	address string,
	price kernel.Money,
	shippingCosts kernel.Money,
	lines []Line,
	createdAt time.Time,
	startedAt *time.Time,
	sentAt *time.Time,
	deliveredAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		price:         price,
		shippingCosts: shippingCosts,
		lines:         lines,
		createdAt:     createdAt,
		startedAt:     startedAt,
		sentAt:        sentAt,
		deliveredAt:   deliveredAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
		o.validateTimestampLadder(),
		o.validateVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct, and should be called when an order crosses a
// persistence boundary.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the placing customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the identifier of the owning restaurant.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// Price returns the order total: line subtotal plus shipping costs.
func (o *Order) Price() kernel.Money {
	return o.price
}

// ShippingCosts returns the shipping costs applied to the order.
func (o *Order) ShippingCosts() kernel.Money {
	return o.shippingCosts
}

// Lines returns the order's product lines.
// The returned slice is a copy; mutating it does not affect the order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StartedAt returns the confirmation instant, or nil while Pending.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// SentAt returns the dispatch instant, or nil before the order is sent.
func (o *Order) SentAt() *time.Time {
	return o.sentAt
}

// DeliveredAt returns the delivery instant, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version returns the optimistic concurrency token of the loaded snapshot.
func (o *Order) Version() int {
	return o.version
}

// Status derives the lifecycle status from the timestamps. The latest
// stamped stage wins, so exactly the timestamps consistent with the returned
// status are non-nil.
func (o *Order) Status() Status {
	switch {
	case o.deliveredAt != nil:
		return Delivered
	case o.sentAt != nil:
		return Sent
	case o.startedAt != nil:
		return InProcess
	default:
		return Pending
	}
}

// ApplyQuote replaces the order's full line set and totals with the output of
// a pricing computation. This is the only way lines and totals change: both
// the create path (empty current set) and the update path (full replace of
// the previous set) go through it, so snapshotted unit prices always reflect
// the catalog at the moment of the last save.
//
// Fails with a state conflict unless the order is Pending.
func (o *Order) ApplyQuote(lines []Line, shippingCosts, price kernel.Money) error {
	if err := o.ensureEditable("only pending orders can be edited"); err != nil {
		return err
	}

	if err := validateLines(lines); err != nil {
		return err
	}

	replaced := make([]Line, len(lines))
	copy(replaced, lines)

	o.lines = replaced
	o.shippingCosts = shippingCosts
	o.price = price
	return nil
}

// ChangeAddress updates the delivery address.
// Fails with a state conflict unless the order is Pending.
func (o *Order) ChangeAddress(address string) error {
	if err := o.ensureEditable("only pending orders can be edited"); err != nil {
		return err
	}
	return o.setAddress(address)
}

// EnsureDeletable verifies the order may be destroyed.
// Only Pending orders can be deleted; deletion cascades to the lines.
func (o *Order) EnsureDeletable() error {
	return o.ensureEditable("only pending orders can be deleted")
}

// Confirm stamps startedAt, moving the order from Pending to InProcess.
// Re-invoking on an already confirmed order fails with a state conflict
// instead of re-stamping the timestamp.
func (o *Order) Confirm(now time.Time) error {
	if o.Status() != Pending {
		return o.stateConflict("confirm", Pending)
	}

	o.startedAt = &now
	return nil
}

// Send stamps sentAt, moving the order from InProcess to Sent.
// The timestamp must not precede startedAt.
func (o *Order) Send(now time.Time) error {
	if o.Status() != InProcess {
		return o.stateConflict("send", InProcess)
	}

	if now.Before(*o.startedAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"sentAt",
			fmt.Errorf("%s precedes startedAt %s", now, o.startedAt),
		)
	}

	o.sentAt = &now
	return nil
}

// Deliver stamps deliveredAt, moving the order from Sent to Delivered.
// The timestamp must not precede sentAt. Delivered is a final state.
func (o *Order) Deliver(now time.Time) error {
	if o.Status() != Sent {
		return o.stateConflict("deliver", Sent)
	}

	if now.Before(*o.sentAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveredAt",
			fmt.Errorf("%s precedes sentAt %s", now, o.sentAt),
		)
	}

	o.deliveredAt = &now
	return nil
}

// ServiceDuration returns the elapsed time from creation to delivery.
// The second return is false while the order is not yet delivered.
func (o *Order) ServiceDuration() (time.Duration, bool) {
	if o.deliveredAt == nil {
		return 0, false
	}
	return o.deliveredAt.Sub(o.createdAt), true
}

func (o *Order) ensureEditable(details string) error {
	if status := o.Status(); !status.IsEditable() {
		return errs.NewStateConflictErrorWithCause(
			"order",
			details,
			fmt.Errorf("order %s is %q", o.id, status),
		)
	}
	return nil
}

func (o *Order) stateConflict(operation string, required Status) error {
	return errs.NewStateConflictErrorWithCause(
		"order",
		fmt.Sprintf("cannot %s order", operation),
		fmt.Errorf("order %s is %q, %s requires %q", o.id, o.Status(), operation, required),
	)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("customerId: %w", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return fmt.Errorf("restaurantId: %w", err)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(address) > MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", len(address), 1, MaxAddressLength)
	}
	o.address = address
	return nil
}

// validateTimestampLadder rejects persisted states where a later-stage
// timestamp is set while an earlier one is missing.
func (o *Order) validateTimestampLadder() error {
	if o.sentAt != nil && o.startedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"sentAt",
			errors.New("sentAt is set while startedAt is nil"),
		)
	}
	if o.deliveredAt != nil && o.sentAt == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveredAt",
			errors.New("deliveredAt is set while sentAt is nil"),
		)
	}
	return nil
}

func (o *Order) validateVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is negative", version),
		)
	}
	return nil
}
