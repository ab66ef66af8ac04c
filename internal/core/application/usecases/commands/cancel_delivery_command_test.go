package commands_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewCancelDeliveryCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCancelDeliveryCommand(kernel.NewUUID(), delivery.RoleOperator, "duplicate request")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("reason is required", func(t *testing.T) {
		_, err := commands.NewCancelDeliveryCommand(kernel.NewUUID(), delivery.RoleOperator, "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown actor role is rejected", func(t *testing.T) {
		_, err := commands.NewCancelDeliveryCommand(kernel.NewUUID(), delivery.ActorRole("intern"), "why not")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CancelDeliveryCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCancelDeliveryCommandIsNotConstructed)
	})
}
