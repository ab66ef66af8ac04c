package commands_test

import (
	"context"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByTrackingCode(ctx context.Context, code string) (*delivery.Delivery, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetFirstPendingForUpdate(ctx context.Context) (*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllActive(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountActiveForCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	args := m.Called(ctx, courierID)
	return args.Int(0), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyAssigned(ctx context.Context, d *delivery.Delivery) {
	m.Called(ctx, d)
}

func (m *MockNotifier) NotifyUnassigned(ctx context.Context, d *delivery.Delivery, courierID kernel.UUID) {
	m.Called(ctx, d, courierID)
}

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, d *delivery.Delivery) {
	m.Called(ctx, d)
}

func (m *MockNotifier) NotifyDelivered(ctx context.Context, d *delivery.Delivery) {
	m.Called(ctx, d)
}

type MockEarningLedger struct{ mock.Mock }

func (m *MockEarningLedger) RecordEarning(ctx context.Context, courierID, deliveryID kernel.UUID, amount int64) error {
	args := m.Called(ctx, courierID, deliveryID, amount)
	return args.Error(0)
}
