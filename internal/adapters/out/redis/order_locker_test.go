package redis_test

import (
	"context"
	"testing"
	"time"

	redisadapter "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type OrderLockerIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
}

func (suite *OrderLockerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379")
	suite.Require().NoError(err)

	suite.rdb = redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	suite.Require().NoError(suite.rdb.Ping(ctx).Err())
}

func (suite *OrderLockerIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		_ = suite.rdb.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderLockerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushAll(context.Background()).Err())
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_SecondLockIsRejectedUntilRelease() {
	ctx := context.Background()
	locker := redisadapter.NewOrderLocker(suite.rdb, time.Minute)
	id := kernel.NewUUID()

	release, err := locker.Lock(ctx, id)
	suite.Require().NoError(err)

	_, err = locker.Lock(ctx, id)
	suite.Require().ErrorIs(err, ports.ErrOrderLocked)

	suite.Require().NoError(release(ctx))

	release, err = locker.Lock(ctx, id)
	suite.Require().NoError(err)
	suite.Require().NoError(release(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_DifferentOrdersDoNotConflict() {
	ctx := context.Background()
	locker := redisadapter.NewOrderLocker(suite.rdb, time.Minute)

	releaseA, err := locker.Lock(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	releaseB, err := locker.Lock(ctx, kernel.NewUUID())
	suite.Require().NoError(err)

	suite.NoError(releaseA(ctx))
	suite.NoError(releaseB(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_SetsTTL() {
	ctx := context.Background()
	locker := redisadapter.NewOrderLocker(suite.rdb, 30*time.Second)
	id := kernel.NewUUID()

	release, err := locker.Lock(ctx, id)
	suite.Require().NoError(err)
	defer func() { _ = release(ctx) }()

	ttl, err := suite.rdb.PTTL(ctx, redisadapter.Key(id)).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, 30*time.Second)
}

func (suite *OrderLockerIntegrationTestSuite) TestRelease_DoesNotDeleteForeignLock() {
	ctx := context.Background()
	locker := redisadapter.NewOrderLocker(suite.rdb, time.Minute)
	id := kernel.NewUUID()

	release, err := locker.Lock(ctx, id)
	suite.Require().NoError(err)

	// Simulate expiry followed by another holder taking the key.
	suite.Require().NoError(suite.rdb.Set(ctx, redisadapter.Key(id), "someone-else", time.Minute).Err())

	suite.Require().ErrorIs(release(ctx), redisadapter.ErrLockLost)

	value, err := suite.rdb.Get(ctx, redisadapter.Key(id)).Result()
	suite.Require().NoError(err)
	suite.Equal("someone-else", value)
}

func TestOrderLockerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLockerIntegrationTestSuite))
}
