package delivery_test

import (
	"testing"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse canonical names", func(t *testing.T) {
		cases := map[string]delivery.Status{
			"pending":     delivery.Pending,
			"assigned":    delivery.Assigned,
			"in_progress": delivery.InProgress,
			"delivered":   delivery.Delivered,
			"cancelled":   delivery.Cancelled,
		}
		for raw, want := range cases {
			got, err := delivery.ParseStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should map legacy aliases", func(t *testing.T) {
		cases := map[string]delivery.Status{
			"created":   delivery.Pending,
			"new":       delivery.Pending,
			"accepted":  delivery.Assigned,
			"picked_up": delivery.InProgress,
			"completed": delivery.Delivered,
			"canceled":  delivery.Cancelled,
		}
		for raw, want := range cases {
			got, err := delivery.ParseStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := delivery.ParseStatus("teleported")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("pending can be assigned", func(t *testing.T) {
		next, err := delivery.Pending.Assign()

		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, next)
	})

	t.Run("assigned cannot be assigned again", func(t *testing.T) {
		_, err := delivery.Assigned.Assign()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("assigned can start", func(t *testing.T) {
		next, err := delivery.Assigned.Start()

		require.NoError(t, err)
		assert.Equal(t, delivery.InProgress, next)
	})

	t.Run("pending cannot start", func(t *testing.T) {
		_, err := delivery.Pending.Start()

		require.Error(t, err)
	})

	t.Run("in progress can complete", func(t *testing.T) {
		next, err := delivery.InProgress.Complete()

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, next)
	})

	t.Run("assigned cannot complete without pickup", func(t *testing.T) {
		_, err := delivery.Assigned.Complete()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("any non-terminal status can cancel", func(t *testing.T) {
		for _, s := range []delivery.Status{delivery.Pending, delivery.Assigned, delivery.InProgress} {
			next, err := s.Cancel()
			require.NoError(t, err)
			assert.Equal(t, delivery.Cancelled, next)
		}
	})

	t.Run("terminal statuses cannot cancel", func(t *testing.T) {
		for _, s := range []delivery.Status{delivery.Delivered, delivery.Cancelled} {
			_, err := s.Cancel()
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrBusinessRule)
		}
	})

	t.Run("assigned can be released back to pending", func(t *testing.T) {
		next, err := delivery.Assigned.Release()

		require.NoError(t, err)
		assert.Equal(t, delivery.Pending, next)
	})

	t.Run("in progress cannot be released", func(t *testing.T) {
		_, err := delivery.InProgress.Release()

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.True(t, delivery.Cancelled.IsTerminal())
	assert.False(t, delivery.Pending.IsTerminal())
	assert.False(t, delivery.Assigned.IsTerminal())
	assert.False(t, delivery.InProgress.IsTerminal())
}
