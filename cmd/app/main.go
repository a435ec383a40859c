package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/adapters/out/rabbitmq"
	redisadapter "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/adapters/out/stripe"
	"fulfillment/internal/pkg/logging"
	"fulfillment/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger, closeLog := logging.New(logging.Config{
		Level:   configs.LogLevel,
		File:    configs.LogFile,
		Service: "fulfillment",
	}, os.Stdout)
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	if err := migrations.Up(configs.DSN(), logger); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	gormDB := mustGormOpen(configs.DSN())

	infra := cmd.Infrastructure{
		Gateway: mustStripeGateway(configs, logger),
		Metrics: metrics.New(),
		Logger:  logger,
		Clock:   time.Now,
	}

	if configs.RabbitMQURL != "" {
		conn, err := amqp.Dial(configs.RabbitMQURL)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		defer conn.Close()

		publisher, err := rabbitmq.NewPublisher(conn)
		if err != nil {
			log.Fatalf("Error creating order event publisher: %v", err)
		}
		defer publisher.Close()
		infra.Publisher = publisher
	} else {
		logger.Warn("RABBITMQ_URL is not set, order events are disabled")
	}

	if configs.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer rdb.Close()
		infra.Locker = redisadapter.NewOrderLocker(rdb, configs.OrderLockTTL)
	} else {
		logger.Warn("REDIS_ADDR is not set, distributed order lock is disabled")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, infra)
	logger.Info("Lifecycle configured", "transition_policy", app.Policy().Name())

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	// Real environment variables take precedence over .env.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	return gormDB
}

func mustStripeGateway(configs cmd.Config, logger *slog.Logger) *stripe.Gateway {
	gateway, err := stripe.NewGateway(stripe.Config{
		APIKey:     configs.StripeAPIKey,
		APIURL:     configs.StripeAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Error creating payment gateway: %v", err)
	}
	return gateway
}

func startWebServer(app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error creating HTTP router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Info("HTTP server started", "port", port)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
