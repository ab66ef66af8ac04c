package zonerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormZoneRepository implements ZoneRepository using GORM. Zones and tariffs
// are reference data without aggregate identity, so no tracker is involved.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// AddZone registers a zone. The composite primary key rejects duplicate
// (district, neighborhood) pairs.
func (r *GormZoneRepository) AddZone(ctx context.Context, z zone.Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}

	dto := zoneFromDomain(z)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetZone returns the zone for the given normalized keys.
func (r *GormZoneRepository) GetZone(ctx context.Context, districtKey, neighborhoodKey string) (zone.Zone, error) {
	if districtKey == "" {
		return zone.Zone{}, errs.NewValueIsRequiredError("district key")
	}

	var dto ZoneDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "district_key = ? AND neighborhood_key = ?", districtKey, neighborhoodKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zone.Zone{}, errs.NewObjectNotFoundError("zone",
				fmt.Sprintf("%s/%s", districtKey, neighborhoodKey))
		}
		return zone.Zone{}, err
	}

	return zoneToDomain(dto)
}

// GetAllZones returns every registered zone, districts first.
func (r *GormZoneRepository) GetAllZones(ctx context.Context) ([]zone.Zone, error) {
	var dtos []ZoneDTO
	if err := r.db.WithContext(ctx).
		Order("district_key, neighborhood_key").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	zones := make([]zone.Zone, 0, len(dtos))
	for _, dto := range dtos {
		z, err := zoneToDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	return zones, nil
}

// AddTariff registers a tariff entry between two districts.
func (r *GormZoneRepository) AddTariff(ctx context.Context, entry zone.TariffEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := tariffFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// EffectiveTariff returns the tariff entry effective at the given instant for
// the origin/destination pair. When several windows overlap, the most
// recently started one wins.
func (r *GormZoneRepository) EffectiveTariff(
	ctx context.Context, originKey, destKey string, at time.Time,
) (zone.TariffEntry, error) {
	var dto TariffDTO
	err := r.db.WithContext(ctx).
		Where("origin_district_key = ? AND dest_district_key = ?", originKey, destKey).
		Where("active AND valid_from <= ? AND (valid_to IS NULL OR valid_to > ?)", at, at).
		Order("valid_from DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zone.TariffEntry{}, errs.NewObjectNotFoundError("tariff",
				fmt.Sprintf("%s>%s", originKey, destKey))
		}
		return zone.TariffEntry{}, err
	}

	return tariffToDomain(dto)
}
