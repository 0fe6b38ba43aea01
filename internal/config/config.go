package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Log struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
}

type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`

	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`

	MySQLHost string `envconfig:"MYSQL_HOST" default:"mysql"`
	MySQLPort string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB   string `envconfig:"MYSQL_DB" default:"ledger"`
	MySQLUser string `envconfig:"MYSQL_USER" default:"ledger"`
	MySQLPass string `envconfig:"MYSQL_PASS" default:"ledger"`

	PostgresURL string `envconfig:"POSTGRES_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"ledger.db"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	IdempTTLSecs int `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"300"`

	SingleAccountPerUser  bool          `envconfig:"SINGLE_ACCOUNT_PER_USER" default:"true"`
	AccountNumberAttempts int           `envconfig:"ACCOUNT_NUMBER_ATTEMPTS" default:"25"`
	StoreTimeout          time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// empty stream / broker list disables that notification fan-out target
	NotifyStream       string   `envconfig:"NOTIFY_STREAM"`
	NotifyKafkaBrokers []string `envconfig:"NOTIFY_KAFKA_BROKERS"`
	NotifyKafkaTopic   string   `envconfig:"NOTIFY_KAFKA_TOPIC" default:"ledger.notifications"`

	RateLimitRPS float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`

	Log Log `envconfig:"LOG"`
}

// Load reads .env files (missing ones are fine) and then the process
// environment. Variables already set in the environment win over .env.
func Load(logger *slog.Logger, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug("no .env file loaded", "err", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded",
		"db_driver", c.DBDriver,
		"single_account_per_user", c.SingleAccountPerUser,
		"store_timeout", c.StoreTimeout,
		"notify_stream", c.NotifyStream,
		"notify_kafka_brokers", len(c.NotifyKafkaBrokers),
	)
	return &c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresURL == "" {
			return errors.New("missing POSTGRES_URL")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (mysql|postgres|sqlite)", c.DBDriver)
	}
	if c.AccountNumberAttempts < 1 {
		return fmt.Errorf("ACCOUNT_NUMBER_ATTEMPTS must be >= 1, got %d", c.AccountNumberAttempts)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be > 0, got %d", c.IdempTTLSecs)
	}
	if len(c.NotifyKafkaBrokers) > 0 && c.NotifyKafkaTopic == "" {
		return errors.New("NOTIFY_KAFKA_TOPIC required when NOTIFY_KAFKA_BROKERS is set")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresURL
	case "sqlite":
		return c.SQLitePath
	}
	return c.MySQLDSN()
}
