// Package courier contains the Courier aggregate root: identity, vehicle
// class and capacity, work zones, availability, and the counters the
// dispatcher scores candidates by. Eligibility questions (CanCarry,
// ServesDistrict, IsDispatchable) live on the aggregate; the candidate
// ranking itself lives in the services package.
package courier
