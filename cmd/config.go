package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Accepted values of DB_DRIVER and CHANGE_FEED.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	FeedPostgres = "postgres"
	FeedRedis    = "redis"
	FeedNone     = "none"
)

// Config is read from the environment, after loading a .env file when present.
type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN      string `envconfig:"DB_DSN"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	ChangeFeed    string `envconfig:"CHANGE_FEED" default:"postgres"`
	ChangeChannel string `envconfig:"CHANGE_CHANNEL"`
	RedisURL      string `envconfig:"REDIS_URL"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"order_notifications"`

	ExtractorURL     string        `envconfig:"EXTRACTOR_URL"`
	ExtractorTimeout time.Duration `envconfig:"EXTRACTOR_TIMEOUT" default:"30s"`

	TravelingAgents []string `envconfig:"TRAVELING_AGENTS"`
	Salespeople     []string `envconfig:"SALESPEOPLE"`
	SupportPhone    string   `envconfig:"SUPPORT_PHONE"`
	TimeZone        string   `envconfig:"TIME_ZONE" default:"America/Argentina/Buenos_Aires"`

	ResyncSchedule string `envconfig:"RESYNC_SCHEDULE" default:"0 */5 * * * *"`
	ConflictPolicy string `envconfig:"CONFLICT_POLICY" default:"last-write-wins"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate joins every configuration problem into one error.
func (c Config) Validate() error {
	var joined error

	switch c.DBDriver {
	case DriverPostgres:
	case DriverSQLite:
		if c.DBDSN == "" {
			joined = errors.Join(joined, errs.NewValueIsRequiredError("DB_DSN"))
		}
	default:
		joined = errors.Join(joined, errs.NewValueIsInvalidErrorWithCause("DB_DRIVER",
			fmt.Errorf("%q is not one of %s, %s", c.DBDriver, DriverPostgres, DriverSQLite)))
	}

	switch c.ChangeFeed {
	case FeedNone:
	case FeedPostgres:
		if c.DBDriver != DriverPostgres {
			joined = errors.Join(joined, errs.NewValueIsInvalidErrorWithCause("CHANGE_FEED",
				errors.New("the postgres change feed needs the postgres driver")))
		}
	case FeedRedis:
		if c.RedisURL == "" {
			joined = errors.Join(joined, errs.NewValueIsRequiredError("REDIS_URL"))
		}
	default:
		joined = errors.Join(joined, errs.NewValueIsInvalidErrorWithCause("CHANGE_FEED",
			fmt.Errorf("%q is not one of %s, %s, %s", c.ChangeFeed, FeedPostgres, FeedRedis, FeedNone)))
	}

	if _, err := orderrepo.ParseConflictPolicy(c.ConflictPolicy); err != nil {
		joined = errors.Join(joined, err)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		joined = errors.Join(joined, errs.NewValueIsInvalidErrorWithCause("TIME_ZONE", err))
	}

	return joined
}

// DSN returns DB_DSN, or for postgres the keyword/value string built from the DB_* parts.
func (c Config) DSN() string {
	if c.DBDSN != "" || c.DBDriver != DriverPostgres {
		return c.DBDSN
	}

	parts := []string{
		"host=" + c.DBHost,
		"port=" + c.DBPort,
		"user=" + c.DBUser,
		"password=" + c.DBPassword,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSslMode,
	}
	return strings.Join(parts, " ")
}

// Location returns the configured time zone, or UTC when it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
