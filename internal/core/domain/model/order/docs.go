// Package order provides the Order aggregate of the fulfillment service and the
// rules that move it through its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding fulfillment status, payment status,
//     the captured payment reference and shipment data
//   - Status and PaymentStatus: the two independent enumerations
//   - TransitionPolicy: the allowed-predecessor table for every transition
//   - Shipment: carrier, tracking number and shipping date
//   - Detail: a read-only order line used for display
//
// Key business rules:
//   - Orders are created by checkout in Pending or Approved status
//   - StartProcessing and Ship never touch the payment status
//   - Cancel requires a refund first when the payment was captured (Approved);
//     MarkRefunded is the only way to reach PaymentRefunded
//   - The permissive policy accepts every valid predecessor, the strict policy
//     keeps terminal orders terminal
package order
