package services

import (
	"errors"
	"math"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/partner"
)

// ErrPartnerNotFound is returned when no suitable partner is available for a
// delivery. This occurs when either no partners are provided or none of them
// is eligible at the dispatch instant.
var ErrPartnerNotFound = errors.New("partner not found")

// PartnerDispatcher is a domain service responsible for finding and assigning
// the best partner for a pending delivery.
//
// Selection rules:
//   - Only eligible partners are considered: active and inside their
//     working-hours window at the dispatch instant
//   - Among eligible partners with a known location, the one nearest to the
//     pickup address wins
//   - Partners without a reported location rank behind all located ones
//   - Ties go to the first partner in input order
type PartnerDispatcher struct{}

// NewPartnerDispatcher creates a new PartnerDispatcher instance.
func NewPartnerDispatcher() PartnerDispatcher {
	return PartnerDispatcher{}
}

// Dispatch finds the best partner for the delivery and assigns it.
// Returns ErrPartnerNotFound when no eligible partner exists. The delivery
// stays pending in that case.
func (pd PartnerDispatcher) Dispatch(d *delivery.Delivery, partners []*partner.Partner,
	now time.Time) (*partner.Partner, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	best, err := pd.findNearestEligible(d, partners, now)
	if err != nil {
		return nil, err
	}

	if err = d.Assign(best, now); err != nil {
		return nil, err
	}

	return best, nil
}

func (pd PartnerDispatcher) findNearestEligible(d *delivery.Delivery,
	partners []*partner.Partner, now time.Time) (*partner.Partner, error) {
	var (
		best         *partner.Partner
		bestDistance = math.Inf(1)
	)

	pickup := d.PickupAddress().Point()

	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if p.IsEligibleAt(now) != nil {
			continue
		}

		// Unlocated partners sort behind every located one.
		distance := math.MaxFloat64
		if ping := p.LastLocation(); ping != nil {
			var err error
			distance, err = ping.Point.DistanceKm(pickup)
			if err != nil {
				return nil, err
			}
		}

		// Strict less keeps the earliest candidate on ties.
		if distance < bestDistance {
			bestDistance = distance
			best = p
		}
	}

	if best == nil {
		return nil, ErrPartnerNotFound
	}

	return best, nil
}
