// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery persistence. It implements the repository pattern for the delivery
// aggregate, handling the conversion between the domain model and the
// relational representation.
package deliveryrepo

import (
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The tracking code carries a unique index for public lookups;
// status and courier_id are indexed for the dispatch queries.
type DeliveryDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TrackingCode string      `gorm:"type:varchar(16);uniqueIndex;not null"`
	Origin       WaypointDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Dest         WaypointDTO `gorm:"embedded;embeddedPrefix:dest_"`

	WeightKg        float64 `gorm:"not null"`
	LengthCm        *float64
	WidthCm         *float64
	HeightCm        *float64
	Fragile         bool
	RequiredVehicle *string `gorm:"type:varchar(16)"`

	RecipientName  string `gorm:"type:varchar(255);not null"`
	RecipientPhone string `gorm:"type:varchar(32);not null"`

	CalculatedPrice int64 `gorm:"not null"`
	ActualPrice     *int64
	DistanceKm      float64
	DistanceSource  string `gorm:"type:varchar(16);not null"`

	CourierID        *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(16);index;not null"`
	ConfirmationCode string     `gorm:"type:varchar(8);not null"`
	EarningRecorded  bool

	CreatedAt   time.Time `gorm:"index;not null"`
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	CancelReason   string `gorm:"type:text"`
	ReassignReason string `gorm:"type:text"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// WaypointDTO represents an embedded delivery endpoint within the deliveries
// table. Coordinates are nullable: endpoints may be address-only.
type WaypointDTO struct {
	District     string `gorm:"type:varchar(128);not null"`
	Neighborhood string `gorm:"type:varchar(128)"`
	Address      string `gorm:"type:varchar(512);not null"`
	Lat          *float64
	Lon          *float64
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	pack := aggregate.Package()
	var lengthCm, widthCm, heightCm *float64
	if pack.Dims != nil {
		l, w, h := pack.Dims.LengthCm, pack.Dims.WidthCm, pack.Dims.HeightCm
		lengthCm, widthCm, heightCm = &l, &w, &h
	}

	var requiredVehicle *string
	if pack.RequiredVehicle != nil {
		raw := pack.RequiredVehicle.String()
		requiredVehicle = &raw
	}

	return DeliveryDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode(),
		Origin:       waypointFromDomain(aggregate.Origin()),
		Dest:         waypointFromDomain(aggregate.Destination()),

		WeightKg:        pack.WeightKg,
		LengthCm:        lengthCm,
		WidthCm:         widthCm,
		HeightCm:        heightCm,
		Fragile:         pack.Fragile,
		RequiredVehicle: requiredVehicle,

		RecipientName:  aggregate.Recipient().Name,
		RecipientPhone: aggregate.Recipient().Phone,

		CalculatedPrice: aggregate.CalculatedPrice(),
		ActualPrice:     aggregate.ActualPrice(),
		DistanceKm:      aggregate.Distance().Km,
		DistanceSource:  string(aggregate.Distance().Source),

		CourierID:        courierID,
		Status:           aggregate.Status().String(),
		ConfirmationCode: aggregate.ConfirmationCode(),
		EarningRecorded:  aggregate.EarningRecorded(),

		CreatedAt:   aggregate.CreatedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CancelledAt: aggregate.CancelledAt(),

		CancelReason:   aggregate.CancelReason(),
		ReassignReason: aggregate.ReassignReason(),
	}
}

func waypointFromDomain(wp delivery.Waypoint) WaypointDTO {
	var lat, lon *float64
	if wp.Coord != nil {
		la, lo := wp.Coord.Lat(), wp.Coord.Lon()
		lat, lon = &la, &lo
	}

	return WaypointDTO{
		District:     wp.District,
		Neighborhood: wp.Neighborhood,
		Address:      wp.Address,
		Lat:          lat,
		Lon:          lon,
	}
}

// toDomain converts a database DTO to a delivery aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	origin, err := waypointToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	dest, err := waypointToDomain(dto.Dest)
	if err != nil {
		return nil, err
	}

	pack, err := packageToDomain(dto)
	if err != nil {
		return nil, err
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		dto.TrackingCode,
		origin,
		dest,
		pack,
		delivery.Contact{Name: dto.RecipientName, Phone: dto.RecipientPhone},
		dto.CalculatedPrice,
		dto.ActualPrice,
		kernel.Distance{Km: dto.DistanceKm, Source: kernel.DistanceSource(dto.DistanceSource)},
		courierID,
		status,
		dto.ConfirmationCode,
		dto.EarningRecorded,
		dto.CreatedAt,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt, dto.CancelledAt,
		dto.CancelReason, dto.ReassignReason,
	)
}

func waypointToDomain(dto WaypointDTO) (delivery.Waypoint, error) {
	var coord *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if err != nil {
			return delivery.Waypoint{}, err
		}
		coord = &point
	}

	return delivery.Waypoint{
		District:     dto.District,
		Neighborhood: dto.Neighborhood,
		Address:      dto.Address,
		Coord:        coord,
	}, nil
}

func packageToDomain(dto DeliveryDTO) (delivery.PackageSpec, error) {
	var dims *delivery.Dimensions
	if dto.LengthCm != nil && dto.WidthCm != nil && dto.HeightCm != nil {
		dims = &delivery.Dimensions{
			LengthCm: *dto.LengthCm,
			WidthCm:  *dto.WidthCm,
			HeightCm: *dto.HeightCm,
		}
	}

	var requiredVehicle *kernel.VehicleType
	if dto.RequiredVehicle != nil {
		vt, err := kernel.ParseVehicleType(*dto.RequiredVehicle)
		if err != nil {
			return delivery.PackageSpec{}, err
		}
		requiredVehicle = &vt
	}

	return delivery.PackageSpec{
		WeightKg:        dto.WeightKg,
		Dims:            dims,
		Fragile:         dto.Fragile,
		RequiredVehicle: requiredVehicle,
	}, nil
}
