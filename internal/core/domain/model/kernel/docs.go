// Package kernel provides core domain primitives and utilities for the delivery marketplace.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object representing a WGS84 coordinate with great-circle distance
//   - Distance: A measured travel distance together with the provenance of the estimate
//   - VehicleType: The enumeration of courier vehicle classes
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
