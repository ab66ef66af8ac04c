// Package courierrepo provides data transfer objects and mapping functions for
// courier persistence. It implements the repository pattern for the courier
// aggregate, handling the conversion between the domain model and the
// relational representation.
package courierrepo

import (
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Work zones are stored as a text array of normalized district
// keys; verification and availability are indexed for the dispatch pool query.
type CourierDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Vehicle    string         `gorm:"type:varchar(16);not null"`
	CapacityKg float64        `gorm:"not null"`
	WorkZones  pq.StringArray `gorm:"type:text[]"`

	Lat *float64
	Lon *float64

	Verification string `gorm:"type:varchar(16);index;not null"`
	Availability string `gorm:"type:varchar(16);index;not null"`

	Rating              float64 `gorm:"not null"`
	CompletedDeliveries int     `gorm:"not null"`
	ActiveDeliveries    int     `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	var lat, lon *float64
	if loc := aggregate.Location(); loc != nil {
		la, lo := loc.Lat(), loc.Lon()
		lat, lon = &la, &lo
	}

	return CourierDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		Vehicle:    aggregate.Vehicle().String(),
		CapacityKg: aggregate.CapacityKg(),
		WorkZones:  pq.StringArray(aggregate.WorkZones()),

		Lat: lat,
		Lon: lon,

		Verification: aggregate.Verification().String(),
		Availability: aggregate.Availability().String(),

		Rating:              aggregate.Rating(),
		CompletedDeliveries: aggregate.CompletedDeliveries(),
		ActiveDeliveries:    aggregate.ActiveDeliveries(),
	}
}

// toDomain converts a database DTO to a courier aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := kernel.ParseVehicleType(dto.Vehicle)
	if err != nil {
		return nil, err
	}

	verification, err := courier.ParseVerificationStatus(dto.Verification)
	if err != nil {
		return nil, err
	}

	availability, err := courier.ParseAvailability(dto.Availability)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		vehicle,
		dto.CapacityKg,
		[]string(dto.WorkZones),
		location,
		verification,
		availability,
		dto.Rating,
		dto.CompletedDeliveries,
		dto.ActiveDeliveries,
	)
}
