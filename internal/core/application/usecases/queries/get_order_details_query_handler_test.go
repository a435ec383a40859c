package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderDetailsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderDetailsQueryHandler
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) SetupSuite() {
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
	suite.Require().NoError(migrations.Up(dsn, nil))

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.handler = queries.NewGetOrderDetailsQueryHandler(db)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestHandle_OrderWithLines_ReturnsTotal() {
	shippedAt := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	id := suite.saveOrder(orderrepo.OrderDTO{
		Status:         int(order.Shipped),
		PaymentStatus:  int(order.PaymentApproved),
		PaymentIntent:  "pi_123",
		Carrier:        "DHL",
		TrackingNumber: "JD014600006281230704",
		ShippingDate:   &shippedAt,
		Version:        3,
	})
	suite.saveLine(id, "Espresso beans 1kg", 2, "24.90")
	suite.saveLine(id, "Milk frother", 1, "59.00")

	query, err := queries.NewGetOrderDetailsQuery(id)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(id, result.ID)
	suite.Equal(order.Shipped, result.Status)
	suite.Equal(order.PaymentApproved, result.PaymentStatus)
	suite.Equal("pi_123", result.PaymentIntent)
	suite.Equal("DHL", result.Carrier)
	suite.Equal("JD014600006281230704", result.TrackingNumber)
	suite.Require().NotNil(result.ShippingDate)
	suite.True(result.ShippingDate.Equal(shippedAt))
	suite.Equal(3, result.Version)

	suite.Require().Len(result.Lines, 2)
	suite.Equal("Espresso beans 1kg", result.Lines[0].ProductName)
	suite.Equal(2, result.Lines[0].Count)
	suite.True(decimal.RequireFromString("49.80").Equal(result.Lines[0].Subtotal))
	suite.Equal("Milk frother", result.Lines[1].ProductName)
	suite.True(decimal.RequireFromString("108.80").Equal(result.Total), "total was %s", result.Total)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestHandle_OrderWithoutLines_ReturnsZeroTotal() {
	id := suite.saveOrder(orderrepo.OrderDTO{
		Status:        int(order.Pending),
		PaymentStatus: int(order.PaymentPending),
	})

	query, err := queries.NewGetOrderDetailsQuery(id)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result.Lines)
	suite.Empty(result.Lines)
	suite.True(result.Total.IsZero())
	suite.Nil(result.ShippingDate)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestHandle_MissingOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderDetailsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderDetailsQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderDetailsQuery constructor")
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	id := suite.saveOrder(orderrepo.OrderDTO{
		Status:        int(order.Pending),
		PaymentStatus: int(order.PaymentPending),
	})
	query, err := queries.NewGetOrderDetailsQuery(id)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = suite.handler.Handle(ctx, query)
	suite.Require().Error(err)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) saveOrder(dto orderrepo.OrderDTO) kernel.UUID {
	id := kernel.NewUUID()
	dto.ID = id.Bytes()
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) saveLine(orderID kernel.UUID, name string, count int, price string) {
	line := orderrepo.OrderDetailDTO{
		OrderID:     orderID.Bytes(),
		ProductName: name,
		Count:       count,
		Price:       decimal.RequireFromString(price),
	}
	suite.Require().NoError(suite.db.Create(&line).Error)
}

func TestGetOrderDetailsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderDetailsQueryHandlerTestSuite))
}
