package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the fulfillment state of an order.
//
//	Pending ──┐
//	Approved ─┼──> InProcess ──> Shipped
//	          │        │
//	          └────────┴──> Cancelled
//
// Refunded is part of the enumeration because checkout and legacy rows may
// carry it; no transition of this package produces it.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Pending
	Approved
	InProcess
	Shipped
	Cancelled
	Refunded
)

var statusNames = map[Status]string{
	Pending:   "Pending",
	Approved:  "Approved",
	InProcess: "Processing",
	Shipped:   "Shipped",
	Cancelled: "Cancelled",
	Refunded:  "Refunded",
}

// AllStatuses lists every valid Status in declaration order.
func AllStatuses() []Status {
	return []Status{Pending, Approved, InProcess, Shipped, Cancelled, Refunded}
}

// Validate rejects Unknown and out-of-range values, typically read from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name; InProcess renders as "Processing".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
