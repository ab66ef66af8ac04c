package queries_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewGetPriceQuoteQuery(t *testing.T) {
	origin := delivery.Waypoint{District: "Kadıköy", Address: "Pickup St 1"}
	destination := delivery.Waypoint{District: "Üsküdar", Address: "Dropoff St 2"}
	pack := delivery.PackageSpec{WeightKg: 3}

	t.Run("valid query", func(t *testing.T) {
		q, err := queries.NewGetPriceQuoteQuery(origin, destination, pack, false, time.Now())

		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("origin district is required", func(t *testing.T) {
		_, err := queries.NewGetPriceQuoteQuery(
			delivery.Waypoint{Address: "Pickup St 1"}, destination, pack, false, time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid package is rejected", func(t *testing.T) {
		_, err := queries.NewGetPriceQuoteQuery(
			origin, destination, delivery.PackageSpec{WeightKg: -1}, false, time.Now())

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q queries.GetPriceQuoteQuery

		require.ErrorIs(t, q.Validate(), queries.ErrGetPriceQuoteQueryIsNotConstructed)
	})
}
