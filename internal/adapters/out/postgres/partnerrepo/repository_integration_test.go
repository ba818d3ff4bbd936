package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"pharmadelivery/internal/adapters/out/postgres/partnerrepo"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE partners").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) createTestPartner(name string) *partner.Partner {
	hours, err := partner.NewWorkingHours(8, 0, 18, 0,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday})
	suite.Require().NoError(err)
	p, err := partner.NewPartner(kernel.NewUUID(), name,
		partner.KindInternal, "+237650000001", "motorbike", hours)
	suite.Require().NoError(err)
	return p
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	p := suite.createTestPartner("Amina Courier")

	point, err := kernel.NewGeoPoint(3.848, 11.502)
	suite.Require().NoError(err)
	applied, err := p.UpdateLocation(point, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().True(applied)
	p.RecordCompletedDelivery()

	suite.Require().NoError(suite.repository.Add(ctx, p))

	restored, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(p.ID()))
	suite.Equal("Amina Courier", restored.Name())
	suite.Equal(partner.KindInternal, restored.Kind())
	suite.Equal("+237650000001", restored.Phone())
	suite.Equal("motorbike", restored.Vehicle())
	suite.Equal(1, restored.CompletedDeliveries())
	suite.True(restored.IsActive())

	suite.Require().NotNil(restored.LastLocation())
	equal, err := restored.LastLocation().Point.IsEqual(point)
	suite.Require().NoError(err)
	suite.True(equal)

	hours := restored.WorkingHours()
	suite.Equal(8*60, hours.StartMinute())
	suite.Equal(18*60, hours.EndMinute())
	suite.Equal([]time.Weekday{time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday}, hours.Weekdays())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()
	p := suite.createTestPartner("Amina Courier")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	p.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, p))

	restored, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.False(restored.IsActive())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllActive_OrderedByName() {
	ctx := context.Background()
	b := suite.createTestPartner("Boubacar")
	a := suite.createTestPartner("Amina")
	inactive := suite.createTestPartner("Chantal")
	inactive.Deactivate()

	suite.Require().NoError(suite.repository.Add(ctx, b))
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, inactive))

	active, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 2)
	suite.Equal("Amina", active[0].Name())
	suite.Equal("Boubacar", active[1].Name())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllAvailableAt_FiltersByWorkingHours() {
	ctx := context.Background()
	p := suite.createTestPartner("Amina")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	// Monday inside and outside the 8:00-18:00 window.
	inside := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	outside := time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC)

	available, err := suite.repository.GetAllAvailableAt(ctx, inside)
	suite.Require().NoError(err)
	suite.Len(available, 1)

	available, err = suite.repository.GetAllAvailableAt(ctx, outside)
	suite.Require().NoError(err)
	suite.Empty(available)
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
