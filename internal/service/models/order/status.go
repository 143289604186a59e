package order

import (
	"database/sql/driver"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPlaced    Status = "Placed"
	StatusPacked    Status = "Packed"
	StatusInTransit Status = "In Transit"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus validates a status token.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusPacked, StatusInTransit, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", apperror.ErrInvalidStatus
	}
}

// Terminal reports whether the state admits no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// rank orders the delivery pipeline. Cancelled sits outside it.
var rank = map[Status]int{
	StatusPlaced:    0,
	StatusPacked:    1,
	StatusInTransit: 2,
	StatusDelivered: 3,
}

// CanTransition reports whether from -> to is a legal lifecycle step. The
// pipeline is forward-only (skipping stages is allowed), Cancelled is
// reachable from any non-terminal state, and terminal states admit no
// outgoing transitions. Re-applying the current status is allowed and
// treated as a no-op upstream.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}

	return rank[to] > rank[from]
}

// PaymentStatus is an independent axis from Status.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) Value() (driver.Value, error) {
	return p.String(), nil
}

// ParsePaymentStatus validates a payment-status token.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), nil
	default:
		return "", apperror.ErrInvalidPaymentStatus
	}
}

// PaymentMethod identifies how the customer pays.
type PaymentMethod string

const (
	PayOnDelivery PaymentMethod = "Pay on Delivery"
	CardPayment   PaymentMethod = "Card Payment"
	BankTransfer  PaymentMethod = "Bank Transfer"
	Paystack      PaymentMethod = "Paystack"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return m.String(), nil
}

// ParsePaymentMethod validates a payment-method token.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayOnDelivery, CardPayment, BankTransfer, Paystack:
		return PaymentMethod(s), nil
	default:
		return "", apperror.ErrInvalidPaymentMethod
	}
}
