package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create a valid address", func(t *testing.T) {
		point := mustGeoPoint(t, 3.848, 11.502)

		address, err := NewAddress(" 12 Rue de la Paix ", "Yaounde", "Centre", "CM",
			"opposite the pharmacy", "ring twice", point)

		require.NoError(t, err)
		assert.Equal(t, "12 Rue de la Paix", address.Street())
		assert.Equal(t, "Yaounde", address.City())
		assert.Equal(t, "Centre", address.Region())
		assert.Equal(t, "CM", address.Country())
		assert.Equal(t, "opposite the pharmacy", address.Landmark())
		assert.Equal(t, "ring twice", address.Instructions())
		assert.Equal(t, point.Lat(), address.Point().Lat())
		assert.NoError(t, address.Validate())
	})

	t.Run("should collect all missing required fields", func(t *testing.T) {
		_, err := NewAddress("", "  ", "Centre", "", "", "", mustGeoPoint(t, 3.848, 11.502))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "country")
	})

	t.Run("should reject an unconstructed geo point", func(t *testing.T) {
		_, err := NewAddress("12 Rue de la Paix", "Yaounde", "", "CM", "", "", kernel.GeoPoint{})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a zero value address", func(t *testing.T) {
		var address Address
		assert.Error(t, address.Validate())
	})
}

func TestAddressIsEqual(t *testing.T) {
	a := testAddress(t, 3.848, 11.502)
	b := testAddress(t, 3.848, 11.502)
	c := testAddress(t, 3.860, 11.520)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}
