package delivery

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"pharmadelivery/internal/pkg/errs"
)

// Tracking number format: "PD" prefix, 8 time-derived digits, 4 random
// alphanumeric characters. The time segment makes numbers non-sequential
// across creations; the random suffix makes them unpredictable.
const (
	trackingNumberPrefix       = "PD"
	trackingNumberSuffixLength = 4
	trackingNumberAlphabet     = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	// maxTrackingNumberAttempts bounds the uniqueness retry loop in
	// UniqueTrackingNumber.
	maxTrackingNumberAttempts = 10
)

var trackingNumberPattern = regexp.MustCompile(`^PD\d{8}[A-Z0-9]{4}$`)

// GenerateTrackingNumber produces a tracking number derived from the given
// instant. Uniqueness is not guaranteed by the format alone; use
// UniqueTrackingNumber when a registry check is available.
func GenerateTrackingNumber(now time.Time) string {
	timeSegment := now.UnixMilli() % 100000000

	suffix := make([]byte, trackingNumberSuffixLength)
	for i := range suffix {
		suffix[i] = trackingNumberAlphabet[rand.IntN(len(trackingNumberAlphabet))]
	}

	return fmt.Sprintf("%s%08d%s", trackingNumberPrefix, timeSegment, suffix)
}

// UniqueTrackingNumber generates tracking numbers until exists reports the
// candidate as unused. Returns an error when the attempt budget is exhausted,
// which in practice only happens if the registry is saturated with collisions.
func UniqueTrackingNumber(now time.Time, exists func(trackingNumber string) bool) (string, error) {
	for attempt := 0; attempt < maxTrackingNumberAttempts; attempt++ {
		candidate := GenerateTrackingNumber(now)
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("trackingNumber",
		fmt.Errorf("no unique tracking number found in %d attempts", maxTrackingNumberAttempts))
}

// ValidTrackingNumber reports whether s matches the tracking number format.
func ValidTrackingNumber(s string) bool {
	return trackingNumberPattern.MatchString(s)
}
