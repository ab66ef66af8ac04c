package commands_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptDeliveryCommandHandler_Handle_AssignedDelivery(t *testing.T) {
	ctx := t.Context()

	testCourier := newDispatchableCourier(t)
	testDelivery := newPendingDelivery(t)
	require.NoError(t, testDelivery.Assign(testCourier.ID(), time.Now()))

	cmd, err := commands.NewAcceptDeliveryCommand(testDelivery.ID(), testCourier.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, testDelivery.ID()).Return(testDelivery, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, testDelivery.Status())

	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_ClaimsPendingDelivery(t *testing.T) {
	ctx := t.Context()

	testCourier := newDispatchableCourier(t)
	testDelivery := newPendingDelivery(t)

	cmd, err := commands.NewAcceptDeliveryCommand(testDelivery.ID(), testCourier.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Twice()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	deliveryRepo.On("GetForUpdate", ctx, testDelivery.ID()).Return(testDelivery, nil).Once()
	courierRepo.On("GetForUpdate", ctx, testCourier.ID()).Return(testCourier, nil).Once()
	deliveryRepo.On("Update", ctx, testDelivery).Return(nil).Once()
	courierRepo.On("Update", ctx, testCourier).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, testDelivery.Status())
	require.NotNil(t, testDelivery.Courier())
	assert.True(t, testDelivery.Courier().IsEqual(testCourier.ID()))
	assert.Equal(t, 1, testCourier.ActiveDeliveries())

	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_UnavailableCourierCannotClaim(t *testing.T) {
	ctx := t.Context()

	testCourier := newDispatchableCourier(t)
	require.NoError(t, testCourier.SetAvailability(courier.Busy))
	testDelivery := newPendingDelivery(t)

	cmd, err := commands.NewAcceptDeliveryCommand(testDelivery.ID(), testCourier.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("GetForUpdate", ctx, testDelivery.ID()).Return(testDelivery, nil).Once()
	courierRepo.On("GetForUpdate", ctx, testCourier.ID()).Return(testCourier, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrBusinessRule)
	assert.Equal(t, delivery.Pending, testDelivery.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
