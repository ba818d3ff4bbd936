package delivery

import (
	"errors"
	"strings"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

// Address is the value object describing a pickup or dropoff location.
// It couples a human-readable postal address with the geographic point used
// for distance and routing math. Immutable after construction.
type Address struct {
	street       string
	city         string
	region       string
	country      string
	landmark     string
	instructions string
	point        kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. Street, city, and country are
// required; landmark and instructions are optional free text.
func NewAddress(street, city, region, country, landmark, instructions string,
	point kernel.GeoPoint) (Address, error) {
	a := Address{
		region:       strings.TrimSpace(region),
		landmark:     strings.TrimSpace(landmark),
		instructions: strings.TrimSpace(instructions),
		guard:        guard.NewConstructorGuard(),
	}

	err := errors.Join(
		a.setStreet(street),
		a.setCity(city),
		a.setCountry(country),
		a.setPoint(point),
	)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = country
	return nil
}

func (a *Address) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("point", err)
	}
	a.point = point
	return nil
}

// Validate checks the constructor guard.
func (a Address) Validate() error {
	return a.guard.Validate(errs.NewValueIsRequiredError("address"))
}

func (a Address) Street() string       { return a.street }
func (a Address) City() string         { return a.city }
func (a Address) Region() string       { return a.region }
func (a Address) Country() string      { return a.country }
func (a Address) Landmark() string     { return a.landmark }
func (a Address) Instructions() string { return a.instructions }

// Point returns the geographic coordinates of the address.
func (a Address) Point() kernel.GeoPoint { return a.point }

// IsEqual compares two addresses by postal fields and coordinates.
func (a Address) IsEqual(other Address) (bool, error) {
	samePoint, err := a.point.IsEqual(other.point)
	if err != nil {
		return false, err
	}
	return a.street == other.street &&
		a.city == other.city &&
		a.region == other.region &&
		a.country == other.country &&
		samePoint, nil
}
