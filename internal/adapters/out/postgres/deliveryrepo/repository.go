package deliveryrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activeStatuses are the non-terminal lifecycle states.
func activeStatuses() []string {
	return []string{
		delivery.Pending.String(),
		delivery.Assigned.String(),
		delivery.InProgress.String(),
	}
}

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database. The quoted price,
// tracking code and creation timestamp are immutable and excluded from the
// update. Select("*") forces zero values through, so clearing the courier
// link on a reject persists as NULL.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "tracking_code", "calculated_price", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a delivery by its public tracking code.
func (r *GormDeliveryRepository) GetByTrackingCode(
	ctx context.Context, trackingCode string,
) (*delivery.Delivery, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("tracking code")
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", trackingCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a delivery and locks its row until the surrounding
// transaction completes, serializing concurrent lifecycle transitions.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstPendingForUpdate retrieves the oldest pending delivery and locks
// its row. SKIP LOCKED lets concurrent dispatchers each grab a different
// delivery instead of queueing on the same row.
func (r *GormDeliveryRepository) GetFirstPendingForUpdate(ctx context.Context) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Order("created_at").
		First(&dto, "status = ?", delivery.Pending.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", "first pending")
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves deliveries in any non-terminal status, oldest first.
func (r *GormDeliveryRepository) GetAllActive(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status IN ?", activeStatuses()).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

// CountActiveForCourier returns how many non-terminal deliveries are in the
// given courier's hands.
func (r *GormDeliveryRepository) CountActiveForCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("courier_id = ? AND status IN ?", courierID.Bytes(), activeStatuses()).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}
