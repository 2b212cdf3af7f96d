package order

import (
	"fmt"
	"strings"

	"menuorder/internal/pkg/errs"
)

// Status represents the kitchen workflow state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> Served
//	   │            │           │
//	   └────────────┴───────────┴──> Cancelled
//
// Served and Cancelled are terminal. Next and CanCancel are the only
// transition rules; every caller goes through them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a submitted order.
	Pending

	// Preparing means the kitchen has started on the order.
	Preparing

	// Ready means the order waits to be taken to the table.
	Ready

	// Served is terminal.
	Served

	// Cancelled is terminal and reachable from any non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Cancelled: "cancelled",
	}
}

// AllStatuses lists the valid statuses in workflow order.
func AllStatuses() []Status {
	return []Status{Pending, Preparing, Ready, Served, Cancelled}
}

// ParseStatus converts the wire name of a status ("pending", "ready", ...)
// into a Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside the enumeration are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It is safe to call on any
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Served || s == Cancelled
}

// IsActive reports whether the kitchen still has work on the order.
// Active orders are the pending and preparing ones.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing
}

// Next returns the following status in the linear chain
// pending -> preparing -> ready -> served.
//
// Returns:
//   - (next, true) for Pending, Preparing and Ready
//   - (s, false) for terminal and invalid statuses
func (s Status) Next() (Status, bool) {
	//nolint:exhaustive // terminal and invalid statuses have no successor
	switch s {
	case Pending:
		return Preparing, true
	case Preparing:
		return Ready, true
	case Ready:
		return Served, true
	default:
		return s, false
	}
}

// CanCancel reports whether the status may move to Cancelled.
func (s Status) CanCancel() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// Cancel transitions the status to Cancelled.
//
// Returns:
//   - (Cancelled, nil) from Pending, Preparing or Ready
//   - (0, error) from a terminal or invalid status
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}

// MarshalText encodes the status as its wire name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}
