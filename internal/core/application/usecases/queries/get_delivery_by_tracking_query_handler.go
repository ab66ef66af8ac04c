package queries

import (
	"context"
	"database/sql"
	"errors"

	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryByTrackingQueryHandler serves the public tracking page read
// model straight from the database.
type GetDeliveryByTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByTrackingQueryHandler creates a handler for tracking
// lookups. Requires a GORM database connection.
func NewGetDeliveryByTrackingQueryHandler(db *gorm.DB) GetDeliveryByTrackingQueryHandler {
	return GetDeliveryByTrackingQueryHandler{db: db}
}

// Handle returns the tracking view for the given code.
func (h GetDeliveryByTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByTrackingQuery,
) (GetDeliveryByTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryByTrackingQueryResponse{}, err
	}

	var resp GetDeliveryByTrackingQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_code,
			status,
			origin_district,
			dest_district,
			created_at,
			assigned_at,
			picked_up_at,
			delivered_at,
			cancelled_at
		FROM deliveries
		WHERE tracking_code = ?
	`, query.TrackingCode()).Row().Scan(
		&resp.TrackingCode,
		&resp.Status,
		&resp.OriginDistrict,
		&resp.DestDistrict,
		&resp.CreatedAt,
		&resp.AssignedAt,
		&resp.PickedUpAt,
		&resp.DeliveredAt,
		&resp.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDeliveryByTrackingQueryResponse{},
				errs.NewObjectNotFoundError("delivery", query.TrackingCode())
		}
		return GetDeliveryByTrackingQueryResponse{}, err
	}

	return resp, nil
}
