package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Each concrete error type
// in this package unwraps to exactly one of these.
var (
	// ErrValueIsRequired classifies missing mandatory input. Caller's fault, never retried.
	ErrValueIsRequired = errors.New("value is required")
	// ErrValueIsInvalid classifies malformed input. Caller's fault, never retried.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsOutOfRange classifies input outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")
	// ErrObjectNotFound classifies lookups of unknown delivery/partner/route ids.
	ErrObjectNotFound = errors.New("object not found")
	// ErrPartnerNotEligible classifies assignments to inactive partners or
	// partners outside their working-hours window.
	ErrPartnerNotEligible = errors.New("partner is not eligible")
	// ErrInvalidTransition classifies delivery and route status transitions
	// that violate the state machine. The pre-call state is preserved.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrIntegrityCheckFailed classifies proof-of-delivery records whose
	// recomputed checksum does not match the stored one.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
	// ErrTransientProvider classifies failures of external providers
	// (dispatch API, blob store) that are safe to retry with backoff.
	ErrTransientProvider = errors.New("transient provider error")
)

// sanitize flattens multi-line values so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing value without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing value with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for an out-of-range value without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for an out-of-range value with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a lookup of an unknown object id.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates a not-found error without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates a not-found error with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// PartnerNotEligibleError reports an assignment attempt to a partner that is
// deactivated or outside its working-hours window.
type PartnerNotEligibleError struct {
	PartnerID string
	Cause     error
}

// NewPartnerNotEligibleError creates an eligibility error. The cause names the
// specific rule that failed (inactive, outside working hours).
func NewPartnerNotEligibleError(partnerID string, cause error) *PartnerNotEligibleError {
	return &PartnerNotEligibleError{PartnerID: partnerID, Cause: cause}
}

func (e *PartnerNotEligibleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrPartnerNotEligible, e.PartnerID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPartnerNotEligible, e.PartnerID)
}

func (e *PartnerNotEligibleError) Unwrap() error {
	return ErrPartnerNotEligible
}

// InvalidTransitionError reports a rejected status transition.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an error for a transition the state machine forbids.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// IntegrityCheckFailedError reports proof-of-delivery tampering or corruption.
type IntegrityCheckFailedError struct {
	ParamName string
	Cause     error
}

// NewIntegrityCheckFailedError creates an integrity error without a cause.
func NewIntegrityCheckFailedError(paramName string) *IntegrityCheckFailedError {
	return &IntegrityCheckFailedError{ParamName: paramName}
}

// NewIntegrityCheckFailedErrorWithCause creates an integrity error with an underlying cause.
func NewIntegrityCheckFailedErrorWithCause(paramName string, cause error) *IntegrityCheckFailedError {
	return &IntegrityCheckFailedError{ParamName: paramName, Cause: cause}
}

func (e *IntegrityCheckFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrIntegrityCheckFailed, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrIntegrityCheckFailed, e.ParamName)
}

func (e *IntegrityCheckFailedError) Unwrap() error {
	return ErrIntegrityCheckFailed
}

// TransientProviderError reports a retryable failure of an external provider.
// Attempts records how many tries were made before surfacing the error.
type TransientProviderError struct {
	Op       string
	Attempts int
	Cause    error
}

// NewTransientProviderError creates a transient provider error recording the
// operation, the number of attempts made, and the final cause.
func NewTransientProviderError(op string, attempts int, cause error) *TransientProviderError {
	return &TransientProviderError{Op: op, Attempts: attempts, Cause: cause}
}

func (e *TransientProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s after %d attempts (cause: %s)", ErrTransientProvider, e.Op, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("%s: %s after %d attempts", ErrTransientProvider, e.Op, e.Attempts)
}

func (e *TransientProviderError) Unwrap() error {
	return ErrTransientProvider
}
