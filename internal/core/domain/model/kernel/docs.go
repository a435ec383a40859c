// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain. Today that is the UUID identifier used for orders.
package kernel
