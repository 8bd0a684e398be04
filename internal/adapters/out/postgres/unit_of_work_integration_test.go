package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tc_postgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"deliverus/internal/adapters/out/postgres"
	"deliverus/internal/adapters/out/postgres/catalogrepo"
	"deliverus/internal/adapters/out/postgres/orderrepo"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
)

type GormUnitOfWorkTestSuite struct {
	suite.Suite
	container *tc_postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *GormUnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tc_postgres.Run(ctx,
		"postgres:15-alpine",
		tc_postgres.WithDatabase("testdb"),
		tc_postgres.WithUsername("testuser"),
		tc_postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.LineDTO{},
		&catalogrepo.ProductDTO{}, &catalogrepo.RestaurantDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *GormUnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormUnitOfWorkTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, products, restaurants CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormUnitOfWorkTestSuite) money(value string) kernel.Money {
	m, err := kernel.NewMoneyFromString(value)
	suite.Require().NoError(err)
	return m
}

func (suite *GormUnitOfWorkTestSuite) newPendingOrder() *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"1 Main St", time.Now(),
	)
	suite.Require().NoError(err)

	line, err := order.NewLine(kernel.NewUUID(), 2, suite.money("5.50"))
	suite.Require().NoError(err)
	err = o.ApplyQuote([]order.Line{line}, suite.money("0.00"), suite.money("11.00"))
	suite.Require().NoError(err)

	return o
}

func (suite *GormUnitOfWorkTestSuite) TestCommit_PersistsOrderWithLines() {
	ctx := context.Background()
	o := suite.newPendingOrder()

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))
	suite.Len(loaded.Lines(), 1)
}

func (suite *GormUnitOfWorkTestSuite) TestRollback_DiscardsHeaderAndLines() {
	ctx := context.Background()
	o := suite.newPendingOrder()

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var lineCount int64
	err = suite.db.Model(&orderrepo.LineDTO{}).Count(&lineCount).Error
	suite.Require().NoError(err)
	suite.Zero(lineCount)
}

func (suite *GormUnitOfWorkTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	err := uow.Commit(context.Background())
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *GormUnitOfWorkTestSuite) TestRollbackAfterCommit_ReportsNoTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *GormUnitOfWorkTestSuite) TestRepositoriesWithoutTransaction_UseMainConnection() {
	ctx := context.Background()
	o := suite.newPendingOrder()

	uow := suite.factory.Create()
	err := uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))
}

func TestGormUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(GormUnitOfWorkTestSuite))
}
