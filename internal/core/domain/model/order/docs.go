// Package order provides the Order aggregate root of the dine-in ordering
// workflow and the status state machine the admin console drives.
//
// The package includes:
//   - Order: a submitted request to the kitchen with a frozen item snapshot
//   - Item: one snapshotted line, copied by value from the cart
//   - Status: the kitchen workflow with Next and CanCancel as transition rules
//   - Summarize: the console aggregates (total, active, today count and revenue)
//
// Key business rules:
//   - Status follows pending -> preparing -> ready -> served
//   - Any non-terminal order can be cancelled; served and cancelled are terminal
//   - Advancing a terminal order is a no-op
//   - Only the status of an order changes after creation
package order
