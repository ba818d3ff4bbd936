package queries_test

import (
	"context"
	"testing"
	"time"

	"pharmadelivery/internal/adapters/out/postgres/deliveryrepo"
	"pharmadelivery/internal/adapters/out/postgres/trackingrepo"
	"pharmadelivery/internal/core/application/usecases/queries"
	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding through the repositories.
type mockAggregateTracker struct {
	mock.Mock
}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func newSeedTracker() *mockAggregateTracker {
	tracker := new(mockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	return tracker
}

type GetTrackingQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetTrackingQueryHandler
}

func (suite *GetTrackingQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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
		&deliveryrepo.DeliveryDTO{}, &trackingrepo.TrackingEventDTO{}))

	suite.handler = queries.NewGetTrackingQueryHandler(db)
}

func (suite *GetTrackingQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetTrackingQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries, tracking_events").Error)
}

func (suite *GetTrackingQueryHandlerTestSuite) seedDelivery() *delivery.Delivery {
	pickupPoint, err := kernel.NewGeoPoint(3.848, 11.502)
	suite.Require().NoError(err)
	dropoffPoint, err := kernel.NewGeoPoint(3.860, 11.520)
	suite.Require().NoError(err)

	pickup, err := delivery.NewAddress("1 Pharmacy Rd", "Yaounde", "Centre", "CM",
		"", "", pickupPoint)
	suite.Require().NoError(err)
	dropoff, err := delivery.NewAddress("5 Market St", "Yaounde", "Centre", "CM",
		"", "", dropoffPoint)
	suite.Require().NoError(err)

	pkg, err := delivery.NewPackageInfo(0.5, 10, 10, 5, 12.0, false, true)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		pickup, dropoff, pkg, "", delivery.PriorityNormal,
		delivery.GenerateTrackingNumber(now), now)
	suite.Require().NoError(err)

	repo := deliveryrepo.NewGormDeliveryRepository(suite.db, newSeedTracker())
	suite.Require().NoError(repo.Add(context.Background(), d))
	return d
}

func (suite *GetTrackingQueryHandlerTestSuite) seedEvent(d *delivery.Delivery,
	status delivery.Status, message string, recordedAt time.Time) *tracking.Event {
	point, err := kernel.NewGeoPoint(3.850, 11.505)
	suite.Require().NoError(err)

	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), status, &point,
		message, nil, recordedAt)
	suite.Require().NoError(err)

	repo := trackingrepo.NewGormTrackingEventRepository(suite.db)
	suite.Require().NoError(repo.Append(context.Background(), event))
	return event
}

func (suite *GetTrackingQueryHandlerTestSuite) TestHandle_ReturnsEventsOldestFirst() {
	d := suite.seedDelivery()
	now := time.Now().UTC()
	first := suite.seedEvent(d, delivery.StatusPending, "delivery created", now)
	second := suite.seedEvent(d, delivery.StatusAssigned, "partner assigned",
		now.Add(10*time.Minute))

	query, err := queries.NewGetTrackingQuery(d.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(result.DeliveryID.IsEqual(d.ID()))
	suite.Equal("pending", result.Status)
	suite.Equal(d.TrackingNumber(), result.TrackingNumber)

	suite.Require().Len(result.Events, 2)
	suite.True(result.Events[0].ID.IsEqual(first.ID()))
	suite.Equal("pending", result.Events[0].Status)
	suite.Equal("delivery created", result.Events[0].Message)
	suite.True(result.Events[1].ID.IsEqual(second.ID()))
	suite.Equal("assigned", result.Events[1].Status)

	suite.Require().NotNil(result.Events[0].Location)
	isEqual, err := result.Events[0].Location.IsEqual(*first.Location())
	suite.Require().NoError(err)
	suite.True(isEqual)
}

func (suite *GetTrackingQueryHandlerTestSuite) TestHandle_SameTimestampEvents_KeepAppendOrder() {
	d := suite.seedDelivery()
	at := time.Now().UTC()

	// Identical timestamps must not scramble the log; the insertion sequence
	// decides.
	appended := []*tracking.Event{
		suite.seedEvent(d, delivery.StatusPending, "delivery created", at),
		suite.seedEvent(d, delivery.StatusAssigned, "partner assigned", at),
		suite.seedEvent(d, delivery.StatusPickedUp, "package picked up", at),
	}

	query, err := queries.NewGetTrackingQuery(d.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result.Events, len(appended))
	for i, event := range appended {
		suite.True(result.Events[i].ID.IsEqual(event.ID()))
	}
}

func (suite *GetTrackingQueryHandlerTestSuite) TestHandle_NoEvents_ReturnsEmptyLog() {
	d := suite.seedDelivery()

	query, err := queries.NewGetTrackingQuery(d.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result.Events)
	suite.Empty(result.Events)
}

func (suite *GetTrackingQueryHandlerTestSuite) TestHandle_UnknownDelivery_ReturnsNotFound() {
	query, err := queries.NewGetTrackingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetTrackingQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetTrackingQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetTrackingQueryIsNotConstructed)
}

func TestGetTrackingQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(GetTrackingQueryHandlerTestSuite))
}
