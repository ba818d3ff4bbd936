package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
)

// 2026-08-31 is a Monday, inside the fixture partners' working hours.
var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func testAddress(t *testing.T, lat, lon float64) delivery.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	address, err := delivery.NewAddress("12 Rue de la Paix", "Yaounde", "Centre", "CM", "", "", point)
	require.NoError(t, err)
	return address
}

func testPackage(t *testing.T) delivery.PackageInfo {
	t.Helper()
	info, err := delivery.NewPackageInfo(1.5, 20, 15, 10, 45.0, false, false)
	require.NoError(t, err)
	return info
}

func testDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t, 3.848, 11.502), testAddress(t, 3.860, 11.520),
		testPackage(t), "", delivery.PriorityNormal,
		delivery.GenerateTrackingNumber(testNow), testNow)
	require.NoError(t, err)
	return d
}

func testInTransitDelivery(t *testing.T, p *partner.Partner) *delivery.Delivery {
	t.Helper()
	d := testDelivery(t)
	require.NoError(t, d.Assign(p, testNow))
	require.NoError(t, d.MarkPickedUp(nil, testNow.Add(10*time.Minute)))
	require.NoError(t, d.MarkInTransit(nil, testNow.Add(15*time.Minute)))
	return d
}

// Handlers stamp time.Now, so fixture partners work around the clock to keep
// the tests independent of the wall clock.
func testPartner(t *testing.T, kind partner.Kind) *partner.Partner {
	t.Helper()
	hours, err := partner.NewWorkingHours(0, 0, 0, 0,
		[]time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday})
	require.NoError(t, err)
	p, err := partner.NewPartner(kernel.NewUUID(), "Amina Courier", kind,
		"+237650000001", "motorbike", hours)
	require.NoError(t, err)
	return p
}

func testWorkingHours(t *testing.T) partner.WorkingHours {
	t.Helper()
	hours, err := partner.NewWorkingHours(8, 0, 18, 0, []time.Weekday{time.Monday})
	require.NoError(t, err)
	return hours
}
