// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// ZoneRepoFactory provides access to the zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	// Used when commands only touch the delivery aggregate.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW manages transactions across delivery and courier aggregates.
	// Lifecycle commands use it to update both sides atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   deliveryRepo := uow.DeliveryRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DeliveryRepoFactory
		CourierRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
