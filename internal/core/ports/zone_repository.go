package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/zone"
)

// ZoneRepository defines the persistence contract for zones and tariffs.
// Zone and tariff lookups are keyed by normalized names; see
// zone.NormalizeName.
type ZoneRepository interface {
	// AddZone registers a zone. Adding the same (district, neighborhood)
	// pair twice is an error.
	AddZone(ctx context.Context, z zone.Zone) error

	// GetZone returns the zone for the given normalized keys, or
	// errs.ErrObjectNotFound when absent. An empty neighborhood key
	// addresses the district-level zone.
	GetZone(ctx context.Context, districtKey, neighborhoodKey string) (zone.Zone, error)

	// GetAllZones returns every registered zone.
	GetAllZones(ctx context.Context) ([]zone.Zone, error)

	// AddTariff registers a tariff entry between two districts.
	AddTariff(ctx context.Context, entry zone.TariffEntry) error

	// EffectiveTariff returns the tariff entry effective at the given
	// instant for the origin/destination pair, or errs.ErrObjectNotFound
	// when no entry applies and the caller should use default rates.
	EffectiveTariff(ctx context.Context, originKey, destKey string, at time.Time) (zone.TariffEntry, error)
}
