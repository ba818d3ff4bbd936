package kernel_test

import (
	"testing"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(3.848, 11.502)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 3.848, p.Lat(), 1e-9)
		assert.InDelta(t, 11.502, p.Lon(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"north pole", 90, 0},
			{"south pole", -90, 0},
			{"date line east", 0, 180},
			{"date line west", 0, -180},
			{"origin", 0, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject out-of-range latitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.001, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should reject out-of-range longitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "NewGeoPoint")
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(3.848, 11.502)

		d, err := p.DistanceKm(p)

		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(3.848, 11.502)
		b, _ := kernel.NewGeoPoint(3.860, 11.520)

		dab, err := a.DistanceKm(b)
		require.NoError(t, err)
		dba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, dab, dba, 1e-12)
		assert.Positive(t, dab)
	})

	t.Run("matches known reference distance", func(t *testing.T) {
		// Paris to London is roughly 344 km great-circle.
		paris, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		london, _ := kernel.NewGeoPoint(51.5074, -0.1278)

		d, err := paris.DistanceKm(london)

		require.NoError(t, err)
		assert.InDelta(t, 344, d, 2)
	})

	t.Run("short urban distance", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(3.848, 11.502)
		b, _ := kernel.NewGeoPoint(3.860, 11.520)

		d, err := a.DistanceKm(b)

		require.NoError(t, err)
		// ~1.3km and ~2km legs in Yaounde stay well under 5 km.
		assert.Greater(t, d, 0.5)
		assert.Less(t, d, 5.0)
	})

	t.Run("should fail for unconstructed points", func(t *testing.T) {
		var zero kernel.GeoPoint
		p, _ := kernel.NewGeoPoint(1, 1)

		_, err := p.DistanceKm(zero)
		require.Error(t, err)

		_, err = zero.DistanceKm(p)
		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates compare equal", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(3.848, 11.502)
		b, _ := kernel.NewGeoPoint(3.848, 11.502)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates compare unequal", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(3.848, 11.502)
		b, _ := kernel.NewGeoPoint(3.860, 11.520)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})
}
