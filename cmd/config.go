package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	defaultHTTPPort     = "8082"
	defaultOrderLockTTL = 30 * time.Second
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StripeAPIKey string
	StripeAPIURL string

	// RabbitMQURL and RedisAddr are optional; an empty value disables order
	// events and the distributed order lock respectively.
	RabbitMQURL string
	RedisAddr   string

	OrderLockTTL           time.Duration
	StrictTransitions      bool
	IncidentReportSchedule string
	LogLevel               string
	LogFile                string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// the .env file was loaded. All problems are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:               withDefault(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 withDefault(getenv("DB_PORT"), "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              withDefault(getenv("DB_SSLMODE"), "disable"),
		StripeAPIKey:           getenv("STRIPE_API_KEY"),
		StripeAPIURL:           getenv("STRIPE_API_URL"),
		RabbitMQURL:            getenv("RABBITMQ_URL"),
		RedisAddr:              getenv("REDIS_ADDR"),
		OrderLockTTL:           defaultOrderLockTTL,
		IncidentReportSchedule: getenv("INCIDENT_REPORT_SCHEDULE"),
		LogLevel:               getenv("LOG_LEVEL"),
		LogFile:                getenv("LOG_FILE"),
	}

	var errTTL, errStrict error
	if raw := strings.TrimSpace(getenv("ORDER_LOCK_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		switch {
		case err != nil:
			errTTL = errs.NewValueIsInvalidErrorWithCause("ORDER_LOCK_TTL", err)
		case ttl <= 0:
			errTTL = errs.NewValueIsInvalidErrorWithCause("ORDER_LOCK_TTL", fmt.Errorf("%s is not positive", ttl))
		default:
			cfg.OrderLockTTL = ttl
		}
	}
	if raw := strings.TrimSpace(getenv("LIFECYCLE_STRICT_TRANSITIONS")); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			errStrict = errs.NewValueIsInvalidErrorWithCause("LIFECYCLE_STRICT_TRANSITIONS", err)
		}
		cfg.StrictTransitions = strict
	}

	if err := errors.Join(
		required("DB_HOST", cfg.DBHost),
		required("DB_USER", cfg.DBUser),
		required("DB_NAME", cfg.DBName),
		required("STRIPE_API_KEY", cfg.StripeAPIKey),
		errTTL,
		errStrict,
	); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the Postgres connection string in URL form, accepted by both gorm's
// postgres driver and lib/pq.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
