// Package checkout turns a cart into an order.
//
// A Checkout starts in Composing, where the table number and kitchen note
// are captured, and moves to Submitted once Submit has produced the order.
// Submit copies the cart lines by value and then empties the cart, so the
// order never shares state with the cart it came from.
package checkout
