// Package zone contains the tariff-area value objects: Zone, the named area
// keyed by district and optional neighborhood, and TariffEntry, a priced
// relation between two zones valid over a date range. Name matching across the
// package is case- and accent-insensitive via NormalizeName.
package zone
