package zone

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ErrTariffEntryIsNotConstructed is returned when using an improperly
// initialized TariffEntry.
var ErrTariffEntryIsNotConstructed = errors.New("TariffEntry must be created via NewTariffEntry constructor")

// Rates is the set of rates the price calculator consumes. It is either taken
// from a currently effective TariffEntry or from the configured default tariff.
type Rates struct {
	// Base is the flat rate charged for every delivery between the two zones.
	Base float64
	// PerKg is the rate per kilogram beyond the included weight.
	PerKg float64
	// PerKm is the rate per kilometer of travel distance.
	PerKm float64
	// IncludedWeightKg is the weight threshold below which no weight
	// surcharge applies.
	IncludedWeightKg float64
}

// Validate checks that all rates are non-negative and the base is positive.
func (r Rates) Validate() error {
	if r.Base <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("base rate",
			fmt.Errorf("%f is not greater than 0", r.Base))
	}
	if r.PerKg < 0 || r.PerKm < 0 || r.IncludedWeightKg < 0 {
		return errs.NewValueIsInvalidError("tariff rates must not be negative")
	}
	return nil
}

// TariffEntry is a priced relation between an origin zone and a destination
// zone, valid over a date range. At most one entry per (origin, destination)
// pair may be active and effective at any instant; the repository enforces
// the lookup, the validity window lives here.
type TariffEntry struct { //nolint:recvcheck //using for validation
	originDistrictKey string
	destDistrictKey   string
	rates             Rates
	validFrom         time.Time
	validTo           *time.Time
	active            bool
	guard             guard.ConstructorGuard
}

// NewTariffEntry creates a tariff entry between two districts. validTo is
// optional; nil means the entry stays effective until deactivated.
func NewTariffEntry(
	originDistrict, destDistrict string,
	rates Rates,
	validFrom time.Time,
	validTo *time.Time,
	active bool,
) (TariffEntry, error) {
	entry := TariffEntry{
		validFrom: validFrom,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setOriginDistrict(originDistrict),
		entry.setDestDistrict(destDistrict),
		entry.setRates(rates),
		entry.setValidTo(validTo),
	); err != nil {
		return TariffEntry{}, err
	}

	return entry, nil
}

// Validate checks if the TariffEntry was properly constructed.
func (t TariffEntry) Validate() error {
	return t.guard.Validate(ErrTariffEntryIsNotConstructed)
}

// OriginDistrictKey returns the normalized origin district key.
func (t TariffEntry) OriginDistrictKey() string {
	return t.originDistrictKey
}

// DestDistrictKey returns the normalized destination district key.
func (t TariffEntry) DestDistrictKey() string {
	return t.destDistrictKey
}

// Rates returns the rates carried by this entry.
func (t TariffEntry) Rates() Rates {
	return t.rates
}

// ValidFrom returns the start of the validity window.
func (t TariffEntry) ValidFrom() time.Time {
	return t.validFrom
}

// ValidTo returns the end of the validity window, or nil for open-ended entries.
func (t TariffEntry) ValidTo() *time.Time {
	return t.validTo
}

// Active reports whether the entry is administratively enabled.
func (t TariffEntry) Active() bool {
	return t.active
}

// EffectiveAt reports whether the entry applies at the given instant:
// it must be active and the instant must fall inside [validFrom, validTo).
func (t TariffEntry) EffectiveAt(at time.Time) bool {
	if !t.active {
		return false
	}
	if at.Before(t.validFrom) {
		return false
	}
	if t.validTo != nil && !at.Before(*t.validTo) {
		return false
	}
	return true
}

func (t *TariffEntry) setOriginDistrict(district string) error {
	if district == "" {
		return errs.NewValueIsRequiredError("origin district")
	}
	t.originDistrictKey = NormalizeName(district)
	return nil
}

func (t *TariffEntry) setDestDistrict(district string) error {
	if district == "" {
		return errs.NewValueIsRequiredError("destination district")
	}
	t.destDistrictKey = NormalizeName(district)
	return nil
}

func (t *TariffEntry) setRates(rates Rates) error {
	if err := rates.Validate(); err != nil {
		return err
	}
	t.rates = rates
	return nil
}

func (t *TariffEntry) setValidTo(validTo *time.Time) error {
	if validTo == nil {
		return nil
	}
	if !validTo.After(t.validFrom) {
		return errs.NewValueIsInvalidError("validTo must be after validFrom")
	}
	end := *validTo
	t.validTo = &end
	return nil
}
