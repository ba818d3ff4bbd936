package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmadelivery/internal/pkg/errs"
)

func TestNewPackageInfo(t *testing.T) {
	t.Run("should create a valid package descriptor", func(t *testing.T) {
		info, err := NewPackageInfo(2.5, 30, 20, 15, 120.0, true, true)

		require.NoError(t, err)
		assert.Equal(t, 2.5, info.WeightKg())
		assert.Equal(t, 120.0, info.DeclaredValue())
		assert.True(t, info.Fragile())
		assert.True(t, info.ColdChain())
		assert.NoError(t, info.Validate())
	})

	t.Run("should reject non-positive weight", func(t *testing.T) {
		for _, weight := range []float64{0, -1.5} {
			_, err := NewPackageInfo(weight, 10, 10, 10, 0, false, false)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject weight above the carryable limit", func(t *testing.T) {
		_, err := NewPackageInfo(maxPackageWeightKg+1, 10, 10, 10, 0, false, false)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative dimensions and declared value", func(t *testing.T) {
		_, err := NewPackageInfo(1, -10, 10, 10, -5, false, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "dimensions")
		assert.Contains(t, err.Error(), "declaredValue")
	})

	t.Run("should reject a zero value descriptor", func(t *testing.T) {
		var info PackageInfo
		assert.Error(t, info.Validate())
	})
}
