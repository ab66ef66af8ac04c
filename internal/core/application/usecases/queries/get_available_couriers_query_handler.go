package queries

import (
	"context"
	"database/sql"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler reads the dispatch candidate pool
// directly from the database.
type GetAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableCouriersQueryHandler creates a handler for the dispatchable
// courier list. Requires a GORM database connection.
func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db}
}

// Handle returns all verified couriers currently marked available, sorted
// by name for stable output.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]GetAvailableCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAvailableCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			vehicle,
			capacity_kg,
			lat,
			lon,
			rating,
			completed_deliveries,
			active_deliveries
		FROM couriers
		WHERE verification = ? AND availability = ?
		ORDER BY name
	`, courier.VerificationVerified.String(), courier.Available.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableCouriersQueryResponse
		var id uuid.UUID
		var lat, lon sql.NullFloat64

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Vehicle,
			&resp.CapacityKg,
			&lat,
			&lon,
			&resp.Rating,
			&resp.CompletedDeliveries,
			&resp.ActiveDeliveries,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = courierID
		resp.Lat = nullFloat(lat)
		resp.Lon = nullFloat(lon)

		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

// nullFloat converts a nullable column to an optional value.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
