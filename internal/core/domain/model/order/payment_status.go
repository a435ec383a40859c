package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order independently of Status.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	// PaymentApproved means the payment was captured and can be refunded.
	PaymentApproved
	PaymentCancelled
	PaymentRefunded
	PaymentRejected
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:   "Pending",
	PaymentApproved:  "Approved",
	PaymentCancelled: "Cancelled",
	PaymentRefunded:  "Refunded",
	PaymentRejected:  "Rejected",
}

func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentApproved, PaymentCancelled, PaymentRefunded, PaymentRejected}
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "Unknown"
}

// IsCaptured reports whether money was taken and a refund is owed on cancellation.
func (p PaymentStatus) IsCaptured() bool {
	return p == PaymentApproved
}
