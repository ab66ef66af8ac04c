package commands_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		delivery.Waypoint{District: "Kadıköy", Address: "Pickup St 1"},
		delivery.Waypoint{District: "Üsküdar", Address: "Dropoff St 2"},
		delivery.PackageSpec{WeightKg: 3},
		delivery.Contact{Name: "Ayşe", Phone: "+905551112233"},
		2500,
		kernel.Distance{Km: 7.5, Source: kernel.DistanceSourceDefault},
		time.Now(),
	)
	require.NoError(t, err)
	return d
}

func newDispatchableCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(
		kernel.NewUUID(), "Mehmet", kernel.VehicleMotorbike, 10,
		nil, nil,
		courier.VerificationVerified, courier.Available,
		4.5, 20, 0,
	)
	require.NoError(t, err)
	return c
}

func TestAutoAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAutoAssignNextCommand()

	testDelivery := newPendingDelivery(t)
	testCourier := newDispatchableCourier(t)

	deliveryRepo := new(MockDeliveryRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		deliveryRepo.On("GetFirstPendingForUpdate", ctx).Return(testDelivery, nil).Once(),
		courierRepo.On("GetAllDispatchable", ctx).Return([]*courier.Courier{testCourier}, nil).Once(),
		deliveryRepo.On("CountActiveForCourier", ctx, testCourier.ID()).Return(0, nil).Once(),
		deliveryRepo.On("Update", ctx, testDelivery).Return(nil).Once(),
		courierRepo.On("Update", ctx, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()
	notifier.On("NotifyAssigned", ctx, testDelivery).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAutoAssignCourierCommandHandler(factory, notifier)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, testDelivery.Status())
	require.NotNil(t, testDelivery.Courier())
	assert.True(t, testDelivery.Courier().IsEqual(testCourier.ID()))
	assert.Equal(t, 1, testCourier.ActiveDeliveries())

	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAutoAssignCourierCommandHandler_Handle_RanksByRepositoryLoad(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAutoAssignNextCommand()

	testDelivery := newPendingDelivery(t)
	// identical counters on the aggregates; only the repository counts differ
	busyCourier := newDispatchableCourier(t)
	idleCourier := newDispatchableCourier(t)

	deliveryRepo := new(MockDeliveryRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	deliveryRepo.On("GetFirstPendingForUpdate", ctx).Return(testDelivery, nil).Once()
	courierRepo.On("GetAllDispatchable", ctx).
		Return([]*courier.Courier{busyCourier, idleCourier}, nil).Once()
	deliveryRepo.On("CountActiveForCourier", ctx, busyCourier.ID()).Return(4, nil).Once()
	deliveryRepo.On("CountActiveForCourier", ctx, idleCourier.ID()).Return(0, nil).Once()
	deliveryRepo.On("Update", ctx, testDelivery).Return(nil).Once()
	courierRepo.On("Update", ctx, idleCourier).Return(nil).Once()
	notifier.On("NotifyAssigned", ctx, testDelivery).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAutoAssignCourierCommandHandler(factory, notifier)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, testDelivery.Courier())
	assert.True(t, testDelivery.Courier().IsEqual(idleCourier.ID()))

	deliveryRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
}

func TestAutoAssignCourierCommandHandler_Handle_NoPendingDelivery(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAutoAssignNextCommand()

	deliveryRepo := new(MockDeliveryRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("GetFirstPendingForUpdate", ctx).
		Return(nil, errs.NewObjectNotFoundError("delivery", nil)).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAutoAssignCourierCommandHandler(factory, notifier)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoPendingDelivery)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAutoAssignCourierCommandHandler_Handle_NoEligibleCourier(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAutoAssignNextCommand()

	testDelivery := newPendingDelivery(t)

	deliveryRepo := new(MockDeliveryRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("GetFirstPendingForUpdate", ctx).Return(testDelivery, nil).Once()
	courierRepo.On("GetAllDispatchable", ctx).Return([]*courier.Courier{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAutoAssignCourierCommandHandler(factory, notifier)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrNoEligibleCourier)
	assert.Equal(t, delivery.Pending, testDelivery.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
