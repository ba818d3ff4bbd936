package kernel

import (
	"fmt"
	"math"

	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

// Coordinate bounds in decimal degrees.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position in decimal degrees.
// GeoPoint is an immutable value object; the zero value is invalid and fails
// validation, so instances must be created through NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(3.848, 11.502)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// out-of-range coordinates are rejected with a ValueIsOutOfRangeError.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := point.setLat(lat); err != nil {
		return GeoPoint{}, err
	}
	if err := point.setLon(lon); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the point was created through NewGeoPoint.
// Returns ErrGeoPointIsNotConstructed for zero-value points.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String implements fmt.Stringer with six decimal places, roughly
// ten-centimeter precision, which is what the mobile clients report.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceKm calculates the great-circle distance to another point using the
// Haversine formula with a mean Earth radius of 6371 km.
//
// The result is symmetric (a.DistanceKm(b) == b.DistanceKm(a)) and zero for
// identical points. Both points must be properly constructed.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	if p.lat == other.lat && p.lon == other.lon {
		return 0, nil
	}

	lat1 := degToRad(p.lat)
	lat2 := degToRad(other.lat)
	dLat := degToRad(other.lat - p.lat)
	dLon := degToRad(other.lon - p.lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	p.lon = lon
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
