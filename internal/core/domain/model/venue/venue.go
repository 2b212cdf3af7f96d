// Package venue models a tenant of the platform: a restaurant, café or bar
// with a fixed set of tables and a display currency.
package venue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/guard"
)

const (
	MinTableCount = 1
	MaxTableCount = 999
)

var ErrVenueIsNotConstructed = errors.New("Venue must be created via NewVenue constructor")

// Venue is read-only configuration from the ordering core's point of view.
// Table identifiers are "1".."tableCount".
type Venue struct {
	id             kernel.UUID
	name           string
	tableCount     int
	currencySymbol string
	location       *time.Location

	guard guard.ConstructorGuard
}

// NewVenue validates and builds a Venue. An empty timezone means UTC;
// otherwise it must be an IANA name such as "Europe/Istanbul".
func NewVenue(id kernel.UUID, name string, tableCount int, currencySymbol, timezone string) (*Venue, error) {
	v := &Venue{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setName(name),
		v.setTableCount(tableCount),
		v.setCurrencySymbol(currencySymbol),
		v.setTimezone(timezone),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Venue) Validate() error {
	if v == nil {
		return ErrVenueIsNotConstructed
	}
	return v.guard.Validate(ErrVenueIsNotConstructed)
}

func (v *Venue) ID() kernel.UUID {
	return v.id
}

func (v *Venue) Name() string {
	return v.name
}

func (v *Venue) TableCount() int {
	return v.tableCount
}

func (v *Venue) CurrencySymbol() string {
	return v.currencySymbol
}

// Location is the venue's timezone; "today" aggregates use its calendar day.
func (v *Venue) Location() *time.Location {
	return v.location
}

// TableNumbers lists the valid table identifiers in order.
func (v *Venue) TableNumbers() []string {
	tables := make([]string, 0, v.tableCount)
	for i := 1; i <= v.tableCount; i++ {
		tables = append(tables, strconv.Itoa(i))
	}
	return tables
}

// HasTable reports whether tableNumber is one of the venue's identifiers.
// Leading zeros and surrounding spaces are not accepted.
func (v *Venue) HasTable(tableNumber string) bool {
	n, err := strconv.Atoi(tableNumber)
	if err != nil || strconv.Itoa(n) != tableNumber {
		return false
	}
	return n >= 1 && n <= v.tableCount
}

func (v *Venue) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Venue) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

func (v *Venue) setTableCount(tableCount int) error {
	if tableCount < MinTableCount || tableCount > MaxTableCount {
		return errs.NewValueIsOutOfRangeError("tableCount", tableCount, MinTableCount, MaxTableCount)
	}
	v.tableCount = tableCount
	return nil
}

func (v *Venue) setCurrencySymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return errs.NewValueIsRequiredError("currencySymbol")
	}
	v.currencySymbol = symbol
	return nil
}

func (v *Venue) setTimezone(timezone string) error {
	if timezone == "" {
		v.location = time.UTC
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("timezone", fmt.Errorf("%q: %w", timezone, err))
	}
	v.location = loc
	return nil
}
