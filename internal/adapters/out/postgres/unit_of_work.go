// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work brackets one business transaction: repositories
// obtained from it share the same database transaction, changes become visible
// together on Commit, and Rollback discards them all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx) // no-op after a successful commit
//
//	if err := uow.DeliveryRepository().Add(ctx, delivery); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each command handler creates its own unit of work instance; instances are
// not safe for concurrent use.
package postgres

import (
	"context"

	"lastmile/internal/adapters/out/postgres/courierrepo"
	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/zonerepo"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Tracking enables post-commit processing such as an outbox or domain events.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. Each Create call returns a fresh instance with its
// own transaction state, isolating concurrent business operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances bound to the given database connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the delivery,
// courier and zone repositories, and tracks the aggregates modified inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the database transaction. Subsequent repository operations
// execute inside it. Calling Begin again on an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. Rolling
// back when no transaction is open is a no-op, so handlers can defer it
// unconditionally right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DeliveryRepository returns a delivery repository bound to the current
// transaction, or to the main connection when none is open.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// CourierRepository returns a courier repository bound to the current
// transaction, or to the main connection when none is open.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// ZoneRepository returns a zone repository bound to the current transaction,
// or to the main connection when none is open.
func (uow *GormUnitOfWork) ZoneRepository() ports.ZoneRepository {
	return zonerepo.NewGormZoneRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
