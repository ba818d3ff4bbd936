// Package errs provides the standardized error taxonomy for the delivery
// orchestration service.
//
// The taxonomy mirrors how operations may fail:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input, caller's fault, never retried
//   - ObjectNotFoundError: unknown delivery, partner, or route id
//   - PartnerNotEligibleError: partner inactive or outside working hours
//   - InvalidTransitionError: delivery/route state-machine violation
//   - IntegrityCheckFailedError: proof-of-delivery tampering or corruption
//   - TransientProviderError: external provider timeout, retried internally
//     with backoff before surfacing
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrInvalidTransition) for errors.Is
//   - a struct type carrying the failure details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// Validation and state-machine errors are returned synchronously and never
// retried; transient provider errors carry the attempt count after which
// the operation gave up. No rejected operation is ever swallowed.
package errs
