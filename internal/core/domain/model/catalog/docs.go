// Package catalog models the venue's menu products as the ordering core sees
// them: name, image, base price, and variation groups whose options adjust
// the price.
//
// Key business rules:
//   - A product's base price must not be negative
//   - At most one option may be selected per variation group
//   - The resulting unit price (base plus adjustments) must not be negative
//
// Product.Select turns a set of option IDs into a Selection that the cart
// uses to build a line item.
package catalog
