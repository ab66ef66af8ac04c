// Package earningrepo persists courier earnings. One row per completed
// delivery; a unique index on delivery_id makes the posting idempotent at
// the database level, backing up the aggregate's earning-recorded flag.
package earningrepo

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EarningDTO is the database representation of a posted earning.
type EarningDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Amount     int64     `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for earnings.
func (EarningDTO) TableName() string {
	return "earnings"
}

// GormEarningLedger implements ports.EarningLedger using GORM.
type GormEarningLedger struct {
	db *gorm.DB
}

// NewGormEarningLedger creates a new GORM earning ledger.
func NewGormEarningLedger(db *gorm.DB) *GormEarningLedger {
	return &GormEarningLedger{db: db}
}

// RecordEarning posts the courier's earning for a delivery. A duplicate
// posting for the same delivery is silently ignored.
func (l *GormEarningLedger) RecordEarning(
	ctx context.Context, courierID, deliveryID kernel.UUID, amount int64,
) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("earning amount must be positive")
	}

	dto := EarningDTO{
		ID:         uuid.New(),
		CourierID:  courierID.Bytes(),
		DeliveryID: deliveryID.Bytes(),
		Amount:     amount,
		RecordedAt: time.Now().UTC(),
	}

	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "delivery_id"}},
			DoNothing: true,
		}).
		Create(&dto).Error
}
