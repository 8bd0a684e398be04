package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"deliverus/internal/adapters/out/postgres/orderrepo"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
)

type GormOrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *GormOrderRepositoryTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
}

func (suite *GormOrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormOrderRepositoryTestSuite) money(value string) kernel.Money {
	m, err := kernel.NewMoneyFromString(value)
	suite.Require().NoError(err)
	return m
}

func (suite *GormOrderRepositoryTestSuite) newPendingOrder() *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"1 Main St", time.Now().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	line, err := order.NewLine(kernel.NewUUID(), 2, suite.money("5.50"))
	suite.Require().NoError(err)
	err = o.ApplyQuote([]order.Line{line}, suite.money("0.00"), suite.money("11.00"))
	suite.Require().NoError(err)

	return o
}

func (suite *GormOrderRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.newPendingOrder()

	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))
	suite.Equal(o.Address(), loaded.Address())
	suite.True(loaded.Price().IsEqual(o.Price()))
	suite.True(loaded.ShippingCosts().IsEqual(o.ShippingCosts()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Len(loaded.Lines(), 1)
	suite.Equal(o.Lines()[0].ProductID(), loaded.Lines()[0].ProductID())
	suite.Equal(2, loaded.Lines()[0].Quantity())
	suite.True(loaded.Lines()[0].UnitPrice().IsEqual(suite.money("5.50")))
}

func (suite *GormOrderRepositoryTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_ReplacesLinesAndBumpsVersion() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	newLine, err := order.NewLine(kernel.NewUUID(), 3, suite.money("4.00"))
	suite.Require().NoError(err)
	err = loaded.ApplyQuote([]order.Line{newLine}, suite.money("0.00"), suite.money("12.00"))
	suite.Require().NoError(err)
	err = loaded.ChangeAddress("2 Side St")
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, loaded)
	suite.Require().NoError(err)

	reloaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("2 Side St", reloaded.Address())
	suite.Len(reloaded.Lines(), 1)
	suite.Equal(newLine.ProductID(), reloaded.Lines()[0].ProductID())
	suite.Equal(loaded.Version()+1, reloaded.Version())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsVersionConflict() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	// Two loads of the same snapshot.
	first, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	err = first.ChangeAddress("3 First St")
	suite.Require().NoError(err)
	err = suite.repo.Update(ctx, first)
	suite.Require().NoError(err)

	// The second writer lost the race.
	err = second.ChangeAddress("4 Second St")
	suite.Require().NoError(err)
	err = suite.repo.Update(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionConflict)

	reloaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("3 First St", reloaded.Address())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	o := suite.newPendingOrder()
	err := suite.repo.Update(context.Background(), o)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_PersistsLifecycleTimestamps() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	err = loaded.Confirm(time.Now().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	err = suite.repo.Update(ctx, loaded)
	suite.Require().NoError(err)

	reloaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProcess, reloaded.Status())
	suite.NotNil(reloaded.StartedAt())
}

func (suite *GormOrderRepositoryTestSuite) TestDelete_RemovesOrderAndLines() {
	ctx := context.Background()
	o := suite.newPendingOrder()
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	err = suite.repo.Delete(ctx, loaded)
	suite.Require().NoError(err)

	_, err = suite.repo.Get(ctx, o.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var lineCount int64
	err = suite.db.Model(&orderrepo.LineDTO{}).
		Where("order_id = ?", o.ID().Bytes()).
		Count(&lineCount).Error
	suite.Require().NoError(err)
	suite.Zero(lineCount)
}

func (suite *GormOrderRepositoryTestSuite) TestGetDeliveredServiceMinutes() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()

	// A delivered order 40 minutes after creation.
	createdAt := time.Now().Add(-time.Hour).Truncate(time.Microsecond)
	startedAt := createdAt.Add(10 * time.Minute)
	sentAt := createdAt.Add(20 * time.Minute)
	deliveredAt := createdAt.Add(40 * time.Minute)

	line, err := order.NewLine(kernel.NewUUID(), 1, suite.money("5.00"))
	suite.Require().NoError(err)
	delivered, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), restaurantID,
		"1 Main St", suite.money("5.00"), suite.money("2.50"),
		[]order.Line{line},
		createdAt, &startedAt, &sentAt, &deliveredAt, 0,
	)
	suite.Require().NoError(err)
	err = suite.repo.Add(ctx, delivered)
	suite.Require().NoError(err)

	// A pending order of the same restaurant must not count.
	pending, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), restaurantID,
		"1 Main St", time.Now(),
	)
	suite.Require().NoError(err)
	err = pending.ApplyQuote([]order.Line{line}, suite.money("2.50"), suite.money("7.50"))
	suite.Require().NoError(err)
	err = suite.repo.Add(ctx, pending)
	suite.Require().NoError(err)

	minutes, err := suite.repo.GetDeliveredServiceMinutes(ctx, restaurantID)
	suite.Require().NoError(err)
	suite.Require().Len(minutes, 1)
	suite.InDelta(40.0, minutes[0], 0.01)
}

func (suite *GormOrderRepositoryTestSuite) TestGetDeliveredServiceMinutes_NoDeliveries() {
	minutes, err := suite.repo.GetDeliveredServiceMinutes(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(minutes)
}

func TestGormOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOrderRepositoryTestSuite))
}
