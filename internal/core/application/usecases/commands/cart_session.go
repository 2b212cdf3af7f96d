package commands

import (
	"strings"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
)

// cartSession identifies the cart a command works on.
type cartSession struct {
	venueID   kernel.UUID
	sessionID string
}

func (s *cartSession) setVenueID(venueID kernel.UUID) error {
	if err := venueID.Validate(); err != nil {
		return err
	}
	s.venueID = venueID
	return nil
}

func (s *cartSession) setSessionID(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errs.NewValueIsRequiredError("sessionID")
	}
	s.sessionID = sessionID
	return nil
}

// VenueID returns the venue the cart belongs to.
func (s cartSession) VenueID() kernel.UUID {
	return s.venueID
}

// SessionID returns the customer session owning the cart.
func (s cartSession) SessionID() string {
	return s.sessionID
}
