package guard_test

import (
	"errors"
	"testing"

	"lastmile/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the caller's error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("rates must be created via NewRates")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

// The guard is embedded by value in value objects, so copies of a constructed
// object must stay valid and the zero value of the enclosing type must fail.
func TestConstructorGuard_InValueObject(t *testing.T) {
	type trackingCode struct {
		code  string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("tracking code must be created via its constructor")

	newTrackingCode := func(code string) (trackingCode, error) {
		if code == "" {
			return trackingCode{}, errors.New("code is required")
		}
		return trackingCode{code: code, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed object validates", func(t *testing.T) {
		tc, err := newTrackingCode("LM-20260828-A1B2C3")

		require.NoError(t, err)
		require.NoError(t, tc.guard.Validate(errNotConstructed))
	})

	t.Run("zero value object fails validation", func(t *testing.T) {
		var tc trackingCode

		require.ErrorIs(t, tc.guard.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("copies remain valid", func(t *testing.T) {
		tc, err := newTrackingCode("LM-20260828-A1B2C3")
		require.NoError(t, err)

		clone := tc

		require.NoError(t, clone.guard.Validate(errNotConstructed))
		require.NoError(t, tc.guard.Validate(errNotConstructed))
	})
}

func TestErrDefaultConstructorGuard(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
