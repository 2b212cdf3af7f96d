// Package kernel provides the shared value objects of the menu ordering domain.
//
// The package includes:
//   - UUID: identity of venues, products and orders; orders use time-ordered v7 ids
//   - Money: exact decimal amounts backed by github.com/shopspring/decimal
//
// Both are immutable and safe for concurrent use.
package kernel
