// Package services contains stateless domain services that coordinate
// multiple aggregates or encapsulate policy that belongs to no single one:
// zone resolution, distance estimation with graceful degradation, the
// pricing formula, and courier dispatch.
package services
