// Package zonerepo provides data transfer objects and mapping functions for
// zone and tariff persistence. Zones and tariffs are reference data: they are
// value objects keyed by normalized names rather than aggregates with identity.
package zonerepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO represents the database structure for persisting tariff zones.
// The composite primary key is the normalized (district, neighborhood) pair;
// an empty neighborhood key addresses the district-level zone.
type ZoneDTO struct {
	DistrictKey     string `gorm:"type:varchar(128);primaryKey"`
	NeighborhoodKey string `gorm:"type:varchar(128);primaryKey"`

	District     string `gorm:"type:varchar(128);not null"`
	Neighborhood string `gorm:"type:varchar(128)"`

	Lat *float64
	Lon *float64
}

// TableName specifies the database table name for zone entities.
func (ZoneDTO) TableName() string {
	return "zones"
}

// TariffDTO represents the database structure for persisting tariff entries.
// The surrogate ID exists only for persistence; the domain addresses tariffs
// by district pair and validity window.
type TariffDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginDistrictKey string    `gorm:"type:varchar(128);index:idx_tariff_pair;not null"`
	DestDistrictKey   string    `gorm:"type:varchar(128);index:idx_tariff_pair;not null"`

	Base             float64 `gorm:"not null"`
	PerKg            float64 `gorm:"not null"`
	PerKm            float64 `gorm:"not null"`
	IncludedWeightKg float64 `gorm:"not null"`

	ValidFrom time.Time `gorm:"not null"`
	ValidTo   *time.Time
	Active    bool `gorm:"not null"`
}

// TableName specifies the database table name for tariff entities.
func (TariffDTO) TableName() string {
	return "tariffs"
}

// zoneFromDomain converts a zone value object to its database representation.
func zoneFromDomain(z zone.Zone) ZoneDTO {
	var lat, lon *float64
	if centroid := z.Centroid(); centroid != nil {
		la, lo := centroid.Lat(), centroid.Lon()
		lat, lon = &la, &lo
	}

	return ZoneDTO{
		DistrictKey:     z.DistrictKey(),
		NeighborhoodKey: z.NeighborhoodKey(),
		District:        z.District(),
		Neighborhood:    z.Neighborhood(),
		Lat:             lat,
		Lon:             lon,
	}
}

// zoneToDomain converts a database DTO to a zone value object.
func zoneToDomain(dto ZoneDTO) (zone.Zone, error) {
	var centroid *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if err != nil {
			return zone.Zone{}, err
		}
		centroid = &point
	}

	return zone.NewZone(dto.District, dto.Neighborhood, centroid)
}

// tariffFromDomain converts a tariff entry to its database representation.
// A fresh surrogate ID is assigned on the way in.
func tariffFromDomain(entry zone.TariffEntry) TariffDTO {
	rates := entry.Rates()

	return TariffDTO{
		ID:                uuid.New(),
		OriginDistrictKey: entry.OriginDistrictKey(),
		DestDistrictKey:   entry.DestDistrictKey(),

		Base:             rates.Base,
		PerKg:            rates.PerKg,
		PerKm:            rates.PerKm,
		IncludedWeightKg: rates.IncludedWeightKg,

		ValidFrom: entry.ValidFrom(),
		ValidTo:   entry.ValidTo(),
		Active:    entry.Active(),
	}
}

// tariffToDomain converts a database DTO to a tariff entry.
func tariffToDomain(dto TariffDTO) (zone.TariffEntry, error) {
	return zone.NewTariffEntry(
		dto.OriginDistrictKey,
		dto.DestDistrictKey,
		zone.Rates{
			Base:             dto.Base,
			PerKg:            dto.PerKg,
			PerKm:            dto.PerKm,
			IncludedWeightKg: dto.IncludedWeightKg,
		},
		dto.ValidFrom,
		dto.ValidTo,
		dto.Active,
	)
}
