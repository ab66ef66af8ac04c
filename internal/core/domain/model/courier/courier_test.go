package courier_test

import (
	"testing"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifiedCourier(t *testing.T, capacityKg float64, workZones []string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", kernel.VehicleMotorbike, capacityKg, workZones)
	require.NoError(t, err)
	require.NoError(t, c.Verify())
	require.NoError(t, c.SetAvailability(courier.Available))
	return c
}

func TestNewCourier(t *testing.T) {
	t.Run("should create courier with defaults", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", kernel.VehicleBicycle, 8, []string{"Kadıköy"})

		require.NoError(t, err)
		assert.Equal(t, courier.VerificationPending, c.Verification())
		assert.Equal(t, courier.Offline, c.Availability())
		assert.Zero(t, c.Rating())
		assert.Zero(t, c.ActiveDeliveries())
		assert.Zero(t, c.CompletedDeliveries())
		require.NoError(t, c.Validate())
	})

	t.Run("should normalize work zone names", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", kernel.VehicleCar, 50, []string{"Kadıköy", " USKUDAR "})

		require.NoError(t, err)
		assert.Equal(t, []string{"kadıkoy", "uskudar"}, c.WorkZones())
	})

	t.Run("should require name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "", kernel.VehicleCar, 50, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive capacity", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", kernel.VehicleCar, 0, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var c courier.Courier

		require.Error(t, c.Validate())
	})
}

func TestCourier_Dispatchability(t *testing.T) {
	t.Run("verified and available is dispatchable", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		assert.True(t, c.IsDispatchable())
	})

	t.Run("unverified is not dispatchable", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", kernel.VehicleCar, 50, nil)
		require.NoError(t, err)
		require.NoError(t, c.SetAvailability(courier.Available))

		assert.False(t, c.IsDispatchable())
	})

	t.Run("busy is not dispatchable", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)
		require.NoError(t, c.SetAvailability(courier.Busy))

		assert.False(t, c.IsDispatchable())
	})
}

func TestCourier_CanCarry(t *testing.T) {
	c := newVerifiedCourier(t, 10, nil) // motorbike

	t.Run("within capacity and no vehicle requirement", func(t *testing.T) {
		assert.True(t, c.CanCarry(9.5, nil))
	})

	t.Run("over capacity", func(t *testing.T) {
		assert.False(t, c.CanCarry(10.5, nil))
	})

	t.Run("vehicle class requirement", func(t *testing.T) {
		car := kernel.VehicleCar
		bicycle := kernel.VehicleBicycle

		assert.False(t, c.CanCarry(5, &car))
		assert.True(t, c.CanCarry(5, &bicycle))
	})
}

func TestCourier_ServesDistrict(t *testing.T) {
	t.Run("empty work zones serve all districts", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		assert.True(t, c.ServesDistrict("kadıkoy"))
		assert.True(t, c.ServesDistrict("anything"))
	})

	t.Run("zones restrict service area", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, []string{"Kadıköy", "Üsküdar"})

		assert.True(t, c.ServesDistrict("kadıkoy"))
		assert.True(t, c.ServesDistrict("uskudar"))
		assert.False(t, c.ServesDistrict("besiktas"))
	})
}

func TestCourier_ValidateForAssignment(t *testing.T) {
	t.Run("eligible courier passes", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		require.NoError(t, c.ValidateForAssignment(5, nil))
	})

	t.Run("unavailable courier is rejected", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)
		require.NoError(t, c.SetAvailability(courier.OnBreak))

		err := c.ValidateForAssignment(5, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("overweight package is rejected", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		err := c.ValidateForAssignment(12, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("insufficient vehicle class is rejected", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)
		van := kernel.VehicleVan

		err := c.ValidateForAssignment(5, &van)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})
}

func TestCourier_Counters(t *testing.T) {
	t.Run("active load round trip", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		c.IncrementActiveLoad()
		c.IncrementActiveLoad()
		assert.Equal(t, 2, c.ActiveDeliveries())

		c.DecrementActiveLoad()
		assert.Equal(t, 1, c.ActiveDeliveries())
	})

	t.Run("active load never goes negative", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		c.DecrementActiveLoad()
		assert.Zero(t, c.ActiveDeliveries())
	})

	t.Run("completion bumps completed and releases load", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)
		c.IncrementActiveLoad()

		c.RecordCompletedDelivery()

		assert.Equal(t, 1, c.CompletedDeliveries())
		assert.Zero(t, c.ActiveDeliveries())
	})
}

func TestCourier_Verification(t *testing.T) {
	t.Run("rejected courier cannot be verified", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", kernel.VehicleCar, 50, nil)
		require.NoError(t, err)
		require.NoError(t, c.RejectVerification())

		err = c.Verify()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("verified courier cannot be rejected", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		err := c.RejectVerification()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("should restore persisted state", func(t *testing.T) {
		loc, _ := kernel.NewGeoPoint(41.0, 29.0)
		c, err := courier.RestoreCourier(
			kernel.NewUUID(), "Mehmet", kernel.VehicleVan, 120,
			[]string{"kadıkoy"}, &loc,
			courier.VerificationVerified, courier.Busy,
			4.7, 210, 2,
		)

		require.NoError(t, err)
		assert.Equal(t, 210, c.CompletedDeliveries())
		assert.Equal(t, 2, c.ActiveDeliveries())
		assert.InDelta(t, 4.7, c.Rating(), 0.0001)
		require.NotNil(t, c.Location())
	})

	t.Run("should reject out-of-range rating", func(t *testing.T) {
		_, err := courier.RestoreCourier(
			kernel.NewUUID(), "Mehmet", kernel.VehicleVan, 120,
			nil, nil,
			courier.VerificationVerified, courier.Available,
			5.5, 0, 0,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCourier_DistanceToKm(t *testing.T) {
	target, _ := kernel.NewGeoPoint(41.0082, 28.9784)

	t.Run("no known position", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)

		_, ok := c.DistanceToKm(target)

		assert.False(t, ok)
	})

	t.Run("with position", func(t *testing.T) {
		c := newVerifiedCourier(t, 10, nil)
		pos, _ := kernel.NewGeoPoint(41.0255, 29.0155)
		require.NoError(t, c.MoveTo(pos))

		km, ok := c.DistanceToKm(target)

		require.True(t, ok)
		assert.Greater(t, km, 0.0)
		assert.Less(t, km, 10.0)
	})
}
