package delivery

import (
	"errors"
	"fmt"

	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

const maxPackageWeightKg = 50.0

// PackageInfo describes the physical package being delivered.
// Cold chain packages require refrigerated transport and restrict which
// vehicle types a dispatcher may pick.
type PackageInfo struct {
	weightKg      float64
	lengthCm      float64
	widthCm       float64
	heightCm      float64
	declaredValue float64
	fragile       bool
	coldChain     bool

	guard guard.ConstructorGuard
}

// NewPackageInfo creates a validated PackageInfo. Weight must be positive and
// within the carryable limit; dimensions and declared value must not be
// negative.
func NewPackageInfo(weightKg, lengthCm, widthCm, heightCm, declaredValue float64,
	fragile, coldChain bool) (PackageInfo, error) {
	p := PackageInfo{
		fragile:   fragile,
		coldChain: coldChain,
		guard:     guard.NewConstructorGuard(),
	}

	err := errors.Join(
		p.setWeightKg(weightKg),
		p.setDimensions(lengthCm, widthCm, heightCm),
		p.setDeclaredValue(declaredValue),
	)
	if err != nil {
		return PackageInfo{}, err
	}
	return p, nil
}

func (p *PackageInfo) setWeightKg(weightKg float64) error {
	if weightKg <= 0 || weightKg > maxPackageWeightKg {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg, 0, maxPackageWeightKg)
	}
	p.weightKg = weightKg
	return nil
}

func (p *PackageInfo) setDimensions(lengthCm, widthCm, heightCm float64) error {
	if lengthCm < 0 || widthCm < 0 || heightCm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%fx%fx%f contains a negative side", lengthCm, widthCm, heightCm))
	}
	p.lengthCm = lengthCm
	p.widthCm = widthCm
	p.heightCm = heightCm
	return nil
}

func (p *PackageInfo) setDeclaredValue(declaredValue float64) error {
	if declaredValue < 0 {
		return errs.NewValueIsInvalidErrorWithCause("declaredValue",
			fmt.Errorf("%f is negative", declaredValue))
	}
	p.declaredValue = declaredValue
	return nil
}

// Validate checks the constructor guard.
func (p PackageInfo) Validate() error {
	return p.guard.Validate(errs.NewValueIsRequiredError("packageInfo"))
}

func (p PackageInfo) WeightKg() float64      { return p.weightKg }
func (p PackageInfo) LengthCm() float64      { return p.lengthCm }
func (p PackageInfo) WidthCm() float64       { return p.widthCm }
func (p PackageInfo) HeightCm() float64      { return p.heightCm }
func (p PackageInfo) DeclaredValue() float64 { return p.declaredValue }
func (p PackageInfo) Fragile() bool          { return p.fragile }
func (p PackageInfo) ColdChain() bool        { return p.coldChain }
