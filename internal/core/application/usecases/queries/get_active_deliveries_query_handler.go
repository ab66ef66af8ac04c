package queries

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler reads the active delivery board directly
// from the database, bypassing the aggregate.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for the active
// delivery board. Requires a GORM database connection.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle returns all deliveries in pending, assigned or in_progress status,
// oldest first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			origin_district,
			dest_district,
			courier_id,
			calculated_price,
			distance_km,
			created_at
		FROM deliveries
		WHERE status IN (?, ?, ?)
		ORDER BY created_at
	`, delivery.Pending.String(), delivery.Assigned.String(), delivery.InProgress.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id uuid.UUID
		var courierID uuid.NullUUID

		err = rows.Scan(
			&id,
			&resp.TrackingCode,
			&resp.Status,
			&resp.OriginDistrict,
			&resp.DestDistrict,
			&courierID,
			&resp.CalculatedPrice,
			&resp.DistanceKm,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		if courierID.Valid {
			cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			resp.CourierID = &cID
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
