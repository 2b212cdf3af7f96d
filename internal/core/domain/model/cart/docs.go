// Package cart implements the customer's working basket for a venue session.
//
// The package includes:
//   - LineItem: one product + variation selection with a quantity
//   - Cart: the aggregate that merges, updates and totals line items
//
// Key business rules:
//   - A line item is identified by its composite key: product ID plus the
//     sorted IDs of the selected variation options
//   - Adding an item whose key is already present increments its quantity
//   - Quantities of items in the cart are always positive; setting a
//     quantity of zero or less removes the item
//   - Totals are recomputed on every call, never cached
//
// Carts are ephemeral. Persistence, if any, is a concern of the cart
// repository adapters.
package cart
