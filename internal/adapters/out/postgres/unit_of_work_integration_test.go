package postgres_test

import (
	"context"
	"testing"
	"time"

	"pharmadelivery/internal/adapters/out/postgres"
	"pharmadelivery/internal/adapters/out/postgres/deliveryrepo"
	"pharmadelivery/internal/adapters/out/postgres/partnerrepo"
	"pharmadelivery/internal/adapters/out/postgres/routerepo"
	"pharmadelivery/internal/adapters/out/postgres/trackingrepo"
	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/route"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&partnerrepo.PartnerDTO{},
		&routerepo.RouteDTO{},
		&trackingrepo.TrackingEventDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE deliveries, partners, routes, tracking_events").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestDelivery(dropoffLat, dropoffLon float64) *delivery.Delivery {
	pickupPoint, err := kernel.NewGeoPoint(3.848, 11.502)
	suite.Require().NoError(err)
	pickup, err := delivery.NewAddress("12 Rue de la Paix", "Yaounde", "Centre", "CM", "", "", pickupPoint)
	suite.Require().NoError(err)

	dropoffPoint, err := kernel.NewGeoPoint(dropoffLat, dropoffLon)
	suite.Require().NoError(err)
	dropoff, err := delivery.NewAddress("7 Avenue Kennedy", "Yaounde", "Centre", "CM", "", "", dropoffPoint)
	suite.Require().NoError(err)

	pkg, err := delivery.NewPackageInfo(1.5, 20, 15, 10, 45.0, false, false)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		pickup, dropoff, pkg, "", delivery.PriorityNormal,
		delivery.GenerateTrackingNumber(now), now)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_DeliveryAndEventTogether() {
	ctx := context.Background()
	d := suite.createTestDelivery(3.860, 11.520)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))

	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), d.Status(),
		nil, "delivery created", nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingEventRepository().Append(ctx, event))

	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().DeliveryRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusPending, restored.Status())

	history, err := suite.factory.Create().TrackingEventRepository().GetByDeliveryID(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal("delivery created", history[0].Message())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_LeavesNothingBehind() {
	ctx := context.Background()
	d := suite.createTestDelivery(3.860, 11.520)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))

	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), d.Status(),
		nil, "delivery created", nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingEventRepository().Append(ctx, event))

	suite.Require().NoError(uow.Rollback(ctx))

	var deliveries, events int64
	suite.Require().NoError(suite.db.Table("deliveries").Count(&deliveries).Error)
	suite.Require().NoError(suite.db.Table("tracking_events").Count(&events).Error)
	suite.Zero(deliveries)
	suite.Zero(events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRoutePlan_RoundTrip() {
	ctx := context.Background()
	near := suite.createTestDelivery(3.850, 11.504)
	far := suite.createTestDelivery(3.950, 11.650)
	partnerID := kernel.NewUUID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, near))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, far))

	optimizer, err := services.NewRouteOptimizer(kernel.DefaultSpeedProfile())
	suite.Require().NoError(err)
	plan, err := optimizer.Optimize(ctx, []*delivery.Delivery{far, near})
	suite.Require().NoError(err)

	now := time.Now().UTC()
	r, err := route.NewRoute(kernel.NewUUID(), partnerID,
		[]kernel.UUID{far.ID(), near.ID()}, plan.Order,
		plan.TotalDistanceKm, plan.EstimatedDurationMinutes,
		plan.StartAddress, plan.EndAddress, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RouteRepository().Add(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().RouteRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)

	suite.True(restored.PartnerID().IsEqual(partnerID))
	suite.Equal(route.StatusPlanned, restored.Status())
	suite.InDelta(plan.TotalDistanceKm, restored.TotalDistanceKm(), 1e-9)

	order := restored.OptimizedOrder()
	suite.Require().Len(order, 2)
	suite.True(order[0].IsEqual(near.ID()))
	suite.True(order[1].IsEqual(far.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_SerializesConcurrentTransitions() {
	ctx := context.Background()
	d := suite.createTestDelivery(3.860, 11.520)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	_, err := first.DeliveryRepository().GetForUpdate(ctx, d.ID())
	suite.Require().NoError(err)

	// A second locked read on the same row must wait for the first
	// transaction to finish.
	done := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			done <- err
			return
		}
		defer second.Rollback(ctx)
		_, err := second.DeliveryRepository().GetForUpdate(ctx, d.ID())
		done <- err
	}()

	select {
	case <-done:
		suite.Fail("second GetForUpdate acquired the row lock while it was held")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(first.Rollback(ctx))
	suite.Require().NoError(<-done)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
