// Package delivery contains the Delivery aggregate root and its supporting
// value objects: the lifecycle Status state machine, Waypoint endpoints,
// PackageSpec with volumetric weight rules, and the tracking/confirmation
// code generators.
//
// A delivery is created from an accepted price quote and moves through
// pending, assigned, in_progress, and delivered, with cancellation possible
// from any non-terminal state. The quoted price is captured at creation and
// never changes; the price finally charged is recorded separately.
package delivery
