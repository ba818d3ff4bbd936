package kernel

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Default travel-time parameters for urban pharmacy deliveries.
const (
	DefaultAverageSpeedKmh = 25.0
	DefaultPerStopMinutes  = 10.0
)

// SpeedProfile holds the parameters used to estimate travel time.
// The values come from configuration so callers always see which assumptions
// an estimate was computed with; they are never hidden constants.
type SpeedProfile struct {
	AverageSpeedKmh float64
	PerStopMinutes  float64
}

// DefaultSpeedProfile returns the standard urban profile: 25 km/h average
// speed and 10 minutes of handling per stop.
func DefaultSpeedProfile() SpeedProfile {
	return SpeedProfile{
		AverageSpeedKmh: DefaultAverageSpeedKmh,
		PerStopMinutes:  DefaultPerStopMinutes,
	}
}

// Validate checks that the profile parameters are usable for estimation.
func (sp SpeedProfile) Validate() error {
	if sp.AverageSpeedKmh <= 0 {
		return errs.NewValueIsRequiredError("averageSpeedKmh")
	}
	if sp.PerStopMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("perStopMinutes",
			fmt.Errorf("%f is negative", sp.PerStopMinutes))
	}

	return nil
}

// EstimateDurationMinutes estimates travel time in minutes for the given
// distance and number of stops:
//
//	distanceKm / averageSpeedKmh * 60 + stopCount * perStopMinutes
func (sp SpeedProfile) EstimateDurationMinutes(distanceKm float64, stopCount int) (float64, error) {
	if err := sp.Validate(); err != nil {
		return 0, err
	}
	if distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	if stopCount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("stopCount",
			fmt.Errorf("%d is negative", stopCount))
	}

	return distanceKm/sp.AverageSpeedKmh*60 + float64(stopCount)*sp.PerStopMinutes, nil
}
