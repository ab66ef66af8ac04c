package cmd

import "time"

// Config carries everything the application reads from the environment.
// Numeric fields arrive already parsed; main fails fast on malformed values.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RoutingBaseURL points at the routing provider; empty disables routed
	// distances and every estimate falls back to the straight-line figure.
	RoutingBaseURL string
	RoutingTimeout time.Duration

	// Default tariff rates, applied when no tariff entry covers a pair.
	DefaultBaseRate         float64
	DefaultPerKgRate        float64
	DefaultPerKmRate        float64
	DefaultIncludedWeightKg float64

	// PickupProximityKm bounds how far from the pickup point a courier may
	// confirm collection when reporting a position.
	PickupProximityKm float64

	// AutoAssignSchedule is a six-field cron expression for the dispatch job.
	AutoAssignSchedule string
}
