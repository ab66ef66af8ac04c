package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite verifies delivery persistence
// behavior against a real PostgreSQL instance.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_ValidDelivery_Success() {
	ctx := context.Background()

	testDelivery := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", testDelivery.ID(), testDelivery).Once()

	err := suite.repository.Add(ctx, testDelivery)
	suite.Require().NoError(err)

	suite.assertDeliveryCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_ExistingDelivery_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.TrackingCode(), retrieved.TrackingCode())
	suite.Equal(original.ConfirmationCode(), retrieved.ConfirmationCode())
	suite.Equal(delivery.Pending, retrieved.Status())
	suite.Equal(original.CalculatedPrice(), retrieved.CalculatedPrice())
	suite.Nil(retrieved.ActualPrice())
	suite.Equal(original.Origin().District, retrieved.Origin().District)
	suite.Equal(original.Origin().Neighborhood, retrieved.Origin().Neighborhood)
	suite.Equal(original.Destination().Address, retrieved.Destination().Address)
	suite.Equal(original.Recipient(), retrieved.Recipient())
	suite.InDelta(original.Distance().Km, retrieved.Distance().Km, 0.0001)
	suite.Equal(original.Distance().Source, retrieved.Distance().Source)
	suite.Nil(retrieved.Courier())

	suite.Require().NotNil(retrieved.Origin().Coord)
	suite.InDelta(original.Origin().Coord.Lat(), retrieved.Origin().Coord.Lat(), 0.000001)
	suite.Nil(retrieved.Destination().Coord)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByTrackingCode() {
	ctx := context.Background()

	original := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetByTrackingCode(ctx, original.TrackingCode())
	suite.Require().NoError(err)
	suite.Equal(original.ID(), retrieved.ID())

	_, err = suite.repository.GetByTrackingCode(ctx, "TRK-XXXXXXXX")
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_AssignAndReject_PersistsCourierClear() {
	ctx := context.Background()

	testDelivery := suite.createTestDelivery()
	courierID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", testDelivery.ID(), testDelivery)
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	// Assign and persist.
	suite.Require().NoError(testDelivery.Assign(courierID, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testDelivery))

	retrieved, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.True(retrieved.Courier().IsEqual(courierID))

	// Reject: the courier link must persist as NULL, not keep its old value.
	suite.Require().NoError(testDelivery.Reject(courierID))
	suite.Require().NoError(suite.repository.Update(ctx, testDelivery))

	retrieved, err = suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Pending, retrieved.Status())
	suite.Nil(retrieved.Courier())
	suite.Nil(retrieved.AssignedAt())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_NonExistentDelivery_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestDelivery())
	suite.Require().Error(err)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetFirstPendingForUpdate_ReturnsOldest() {
	ctx := context.Background()

	older := suite.createTestDeliveryAt(time.Now().Add(-2 * time.Hour))
	newer := suite.createTestDeliveryAt(time.Now().Add(-1 * time.Hour))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, older))

	first, err := suite.repository.GetFirstPendingForUpdate(ctx)
	suite.Require().NoError(err)
	suite.Equal(older.ID(), first.ID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetFirstPendingForUpdate_NothingPending() {
	ctx := context.Background()

	testDelivery := suite.createTestDelivery()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	suite.Require().NoError(testDelivery.Assign(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testDelivery))

	_, err := suite.repository.GetFirstPendingForUpdate(ctx)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalStatuses() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	pending := suite.createTestDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	assigned := suite.createTestDelivery()
	suite.Require().NoError(assigned.Assign(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	cancelled := suite.createTestDelivery()
	suite.Require().NoError(cancelled.Cancel(delivery.RoleOperator, "test data", time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	active, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Len(active, 2)
	for _, d := range active {
		suite.False(d.Status().IsTerminal())
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestCountActiveForCourier() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	courierID := kernel.NewUUID()

	for range 2 {
		d := suite.createTestDelivery()
		suite.Require().NoError(d.Assign(courierID, time.Now()))
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}
	unassigned := suite.createTestDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, unassigned))

	count, err := suite.repository.CountActiveForCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repository.CountActiveForCourier(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

// createTestDelivery creates a pending delivery with an origin coordinate and
// a coordinate-less destination.
func (suite *DeliveryRepositoryIntegrationTestSuite) createTestDelivery() *delivery.Delivery {
	return suite.createTestDeliveryAt(time.Now())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createTestDeliveryAt(createdAt time.Time) *delivery.Delivery {
	originCoord, err := kernel.NewGeoPoint(40.9900, 29.0250)
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		delivery.Waypoint{District: "Kadıköy", Neighborhood: "Moda", Address: "Pickup St 1", Coord: &originCoord},
		delivery.Waypoint{District: "Üsküdar", Address: "Dropoff St 2"},
		delivery.PackageSpec{WeightKg: 3},
		delivery.Contact{Name: "Ayşe", Phone: "+905551112233"},
		2500,
		kernel.Distance{Km: 7.5, Source: kernel.DistanceSourceRouted},
		createdAt.UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) assertDeliveryCount(expected int) {
	var count int64
	err := suite.db.Model(&deliveryrepo.DeliveryDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
