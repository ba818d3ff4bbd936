package route

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func testAddress(t *testing.T, lat, lon float64) delivery.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	address, err := delivery.NewAddress("12 Rue de la Paix", "Yaounde", "Centre", "CM", "", "", point)
	require.NoError(t, err)
	return address
}

func testIDs(n int) []kernel.UUID {
	ids := make([]kernel.UUID, n)
	for i := range ids {
		ids[i] = kernel.NewUUID()
	}
	return ids
}

func testRoute(t *testing.T, ids []kernel.UUID, order []kernel.UUID) *Route {
	t.Helper()
	r, err := NewRoute(kernel.NewUUID(), kernel.NewUUID(), ids, order,
		12.5, 60.0, testAddress(t, 3.848, 11.502), testAddress(t, 3.860, 11.520), testNow)
	require.NoError(t, err)
	return r
}

func TestNewRoute(t *testing.T) {
	t.Run("should create a planned route", func(t *testing.T) {
		ids := testIDs(3)
		order := []kernel.UUID{ids[2], ids[0], ids[1]}

		r := testRoute(t, ids, order)

		assert.Equal(t, StatusPlanned, r.Status())
		assert.Equal(t, ids, r.Deliveries())
		assert.Equal(t, order, r.OptimizedOrder())
		assert.Equal(t, 12.5, r.TotalDistanceKm())
		assert.Equal(t, 60.0, r.EstimatedDurationMinutes())
	})

	t.Run("should reject an empty delivery set", func(t *testing.T) {
		_, err := NewRoute(kernel.NewUUID(), kernel.NewUUID(), nil, nil,
			0, 0, testAddress(t, 3.848, 11.502), testAddress(t, 3.860, 11.520), testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an order that is not a permutation", func(t *testing.T) {
		ids := testIDs(3)

		tests := []struct {
			name  string
			order []kernel.UUID
		}{
			{"subset", []kernel.UUID{ids[0], ids[1]}},
			{"duplicate", []kernel.UUID{ids[0], ids[0], ids[1]}},
			{"foreign id", []kernel.UUID{ids[0], ids[1], kernel.NewUUID()}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewRoute(kernel.NewUUID(), kernel.NewUUID(), ids, tt.order,
					0, 0, testAddress(t, 3.848, 11.502), testAddress(t, 3.860, 11.520), testNow)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})

	t.Run("should reject duplicate ids in the delivery set", func(t *testing.T) {
		id := kernel.NewUUID()
		ids := []kernel.UUID{id, id}

		_, err := NewRoute(kernel.NewUUID(), kernel.NewUUID(), ids, ids,
			0, 0, testAddress(t, 3.848, 11.502), testAddress(t, 3.860, 11.520), testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative metrics", func(t *testing.T) {
		ids := testIDs(1)

		_, err := NewRoute(kernel.NewUUID(), kernel.NewUUID(), ids, ids,
			-1, 0, testAddress(t, 3.848, 11.502), testAddress(t, 3.860, 11.520), testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRouteLifecycle(t *testing.T) {
	t.Run("should walk planned through completed", func(t *testing.T) {
		ids := testIDs(2)
		r := testRoute(t, ids, ids)

		require.NoError(t, r.Start(testNow.Add(time.Minute)))
		assert.Equal(t, StatusInProgress, r.Status())

		require.NoError(t, r.Complete(testNow.Add(time.Hour)))
		assert.Equal(t, StatusCompleted, r.Status())
		assert.True(t, r.Status().IsTerminal())
	})

	t.Run("should cancel a planned route", func(t *testing.T) {
		ids := testIDs(1)
		r := testRoute(t, ids, ids)

		require.NoError(t, r.Cancel(testNow))
		assert.Equal(t, StatusCancelled, r.Status())
	})

	t.Run("should reject completing a route that never started", func(t *testing.T) {
		ids := testIDs(1)
		r := testRoute(t, ids, ids)

		assert.ErrorIs(t, r.Complete(testNow), errs.ErrInvalidTransition)
	})

	t.Run("should reject transitions out of terminal states", func(t *testing.T) {
		ids := testIDs(1)
		r := testRoute(t, ids, ids)
		require.NoError(t, r.Cancel(testNow))

		assert.ErrorIs(t, r.Start(testNow), errs.ErrInvalidTransition)
		assert.ErrorIs(t, r.Cancel(testNow), errs.ErrInvalidTransition)
	})
}

func TestRestoreRoute(t *testing.T) {
	t.Run("should restore a route as stored", func(t *testing.T) {
		ids := testIDs(2)
		original := testRoute(t, ids, ids)
		require.NoError(t, original.Start(testNow))

		restored, err := RestoreRoute(original.ID(), original.PartnerID(),
			original.Deliveries(), original.OptimizedOrder(),
			original.TotalDistanceKm(), original.EstimatedDurationMinutes(),
			original.StartAddress(), original.EndAddress(), original.Status(),
			original.CreatedAt(), original.UpdatedAt())

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, StatusInProgress, restored.Status())
	})

	t.Run("should reject an invalid stored status", func(t *testing.T) {
		ids := testIDs(1)
		original := testRoute(t, ids, ids)

		_, err := RestoreRoute(original.ID(), original.PartnerID(),
			ids, ids, 0, 0,
			original.StartAddress(), original.EndAddress(), Status(42),
			original.CreatedAt(), original.UpdatedAt())

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRouteValidate(t *testing.T) {
	var r Route
	assert.ErrorIs(t, r.Validate(), ErrRouteIsNotConstructed)
}
