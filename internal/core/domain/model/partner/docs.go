// Package partner implements the courier partner aggregate.
//
// A Partner is a courier (in-house or third-party) that can be assigned
// deliveries. The aggregate owns the partner's availability: the active flag,
// the working-hours window, and the last-known location. Partners are never
// deleted, only deactivated, so historic deliveries always resolve their
// partner reference.
//
// Eligibility is a single predicate, IsEligibleAt: both direct assignment and
// route planning must consult it before committing a partner to work.
package partner
