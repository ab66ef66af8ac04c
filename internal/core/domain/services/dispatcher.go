package services

import (
	"errors"
	"math"
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/delivery"
)

// ErrNoEligibleCourier is returned when no courier can take the delivery,
// even after widening the search beyond the pickup district's work zones.
var ErrNoEligibleCourier = errors.New("no eligible courier")

// AssignmentResult reports the outcome of an automatic dispatch.
type AssignmentResult struct {
	// Courier is the courier the delivery was assigned to.
	Courier *courier.Courier
	// ZoneWidened is true when the winner was found only after dropping
	// the work zone restriction.
	ZoneWidened bool
}

// Dispatcher is a domain service that selects the best courier for a
// pending delivery and executes the assignment.
//
// Candidate filtering:
//   - verified and available
//   - capacity covers the package's actual weight, vehicle class covers
//     its requirement
//   - work zones include the drop-off district (unless widened)
//
// Ranking, applied in order until a tie breaks:
//  1. distance to the pickup point, ascending (unknown position sorts last)
//  2. current active load, ascending
//  3. rating, descending
//  4. lifetime completed deliveries, descending
//
// When no candidate serves the drop-off district, the search widens once
// to ignore work zones entirely; the result flags this so operators can
// see out-of-zone assignments.
type Dispatcher struct{}

// ActiveLoads maps courier IDs (string form) to their current non-terminal
// delivery count as reported by the delivery repository. Couriers missing
// from the map fall back to the counter carried on the aggregate.
type ActiveLoads map[string]int

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// candidateScore orders couriers for one delivery. Lower is better on the
// first two axes, higher on the last two.
type candidateScore struct {
	distanceKm float64
	activeLoad int
	rating     float64
	completed  int
}

func (s candidateScore) betterThan(other candidateScore) bool {
	if s.distanceKm != other.distanceKm {
		return s.distanceKm < other.distanceKm
	}
	if s.activeLoad != other.activeLoad {
		return s.activeLoad < other.activeLoad
	}
	if s.rating != other.rating {
		return s.rating > other.rating
	}
	return s.completed > other.completed
}

// Eligible filters couriers able to take the delivery. With ignoreZones set,
// work zone membership is not checked (the widened pass).
func (d Dispatcher) Eligible(
	del *delivery.Delivery,
	couriers []*courier.Courier,
	ignoreZones bool,
) ([]*courier.Courier, error) {
	if err := del.Validate(); err != nil {
		return nil, err
	}

	dropDistrict := del.Destination().DistrictKey()
	pack := del.Package()

	var eligible []*courier.Courier
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsDispatchable() {
			continue
		}
		// Capacity limits what the courier can physically lift, so the
		// actual weight applies here, not the billable one.
		if !c.CanCarry(pack.WeightKg, pack.RequiredVehicle) {
			continue
		}
		if !ignoreZones && !c.ServesDistrict(dropDistrict) {
			continue
		}
		eligible = append(eligible, c)
	}

	return eligible, nil
}

// Dispatch selects the best courier for the delivery and assigns it.
//
// Parameters:
//   - del: the delivery to dispatch (must be Pending)
//   - couriers: the candidate pool, typically all dispatchable couriers
//   - loads: repository-counted active loads per courier; nil uses the
//     aggregate counters
//   - at: the assignment instant
//
// Returns:
//   - AssignmentResult with the winner and whether zones were widened
//   - ErrNoEligibleCourier when nobody can take the delivery
//
// On success the delivery transitions to Assigned and the courier's
// active load is incremented; persisting both is the caller's job.
func (d Dispatcher) Dispatch(
	del *delivery.Delivery,
	couriers []*courier.Courier,
	loads ActiveLoads,
	at time.Time,
) (AssignmentResult, error) {
	eligible, err := d.Eligible(del, couriers, false)
	if err != nil {
		return AssignmentResult{}, err
	}

	widened := false
	if len(eligible) == 0 {
		eligible, err = d.Eligible(del, couriers, true)
		if err != nil {
			return AssignmentResult{}, err
		}
		widened = true
	}

	best := d.pickBest(del, eligible, loads)
	if best == nil {
		return AssignmentResult{}, ErrNoEligibleCourier
	}

	if err := del.Assign(best.ID(), at); err != nil {
		return AssignmentResult{}, err
	}
	best.IncrementActiveLoad()

	return AssignmentResult{Courier: best, ZoneWidened: widened}, nil
}

func (d Dispatcher) pickBest(
	del *delivery.Delivery,
	eligible []*courier.Courier,
	loads ActiveLoads,
) *courier.Courier {
	var (
		best      *courier.Courier
		bestScore candidateScore
	)

	for _, c := range eligible {
		activeLoad := c.ActiveDeliveries()
		if n, ok := loads[c.ID().String()]; ok {
			activeLoad = n
		}
		score := candidateScore{
			distanceKm: math.Inf(1),
			activeLoad: activeLoad,
			rating:     c.Rating(),
			completed:  c.CompletedDeliveries(),
		}
		if pickup := del.Origin().Coord; pickup != nil {
			if km, ok := c.DistanceToKm(*pickup); ok {
				score.distanceKm = km
			}
		}

		if best == nil || score.betterThan(bestScore) {
			best = c
			bestScore = score
		}
	}

	return best
}
