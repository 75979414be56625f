package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env               string        `mapstructure:"ENV"`
	Host              string        `mapstructure:"HOST"`
	Port              string        `mapstructure:"PORT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogFormat         string        `mapstructure:"LOG_FORMAT"`
	StorageDriver     string        `mapstructure:"STORAGE_DRIVER"`
	DataDir           string        `mapstructure:"DATA_DIR"`
	SQLitePath        string        `mapstructure:"SQLITE_PATH"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32         `mapstructure:"DB_MIN_CONNS"`
	S3Bucket          string        `mapstructure:"S3_BUCKET"`
	S3Region          string        `mapstructure:"S3_REGION"`
	S3Endpoint        string        `mapstructure:"S3_ENDPOINT"`
	S3Prefix          string        `mapstructure:"S3_PREFIX"`
	S3PathStyle       bool          `mapstructure:"S3_PATH_STYLE"`
	S3AccessKeyID     string        `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `mapstructure:"S3_SECRET_ACCESS_KEY"`
	CouchbaseURL      string        `mapstructure:"COUCHBASE_URL"`
	CouchbaseUser     string        `mapstructure:"COUCHBASE_USER"`
	CouchbasePassword string        `mapstructure:"COUCHBASE_PASSWORD"`
	CouchbaseBucket   string        `mapstructure:"COUCHBASE_BUCKET"`
	BillDir           string        `mapstructure:"BILL_DIR"`
	Timezone          string        `mapstructure:"TIMEZONE"`
	BodyLimit         string        `mapstructure:"BODY_LIMIT"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var keys = []string{
	"ENV", "HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT",
	"STORAGE_DRIVER", "DATA_DIR", "SQLITE_PATH",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PREFIX", "S3_PATH_STYLE",
	"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	"COUCHBASE_URL", "COUCHBASE_USER", "COUCHBASE_PASSWORD", "COUCHBASE_BUCKET",
	"BILL_DIR", "TIMEZONE", "BODY_LIMIT", "REQUEST_TIMEOUT",
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("STORAGE_DRIVER", "file")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("SQLITE_PATH", "./data/hms.db")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "hms/")
	v.SetDefault("COUCHBASE_BUCKET", "hms")
	v.SetDefault("BILL_DIR", ".")
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Addr returns the listen address for the local HTTP surface.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Location is where dates without a zone are interpreted. An empty TIMEZONE
// means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}

// Validate checks the settings the selected storage driver depends on.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "file":
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file driver")
		}
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 driver")
		}
	case "couchbase":
		if c.CouchbaseURL == "" {
			return fmt.Errorf("COUCHBASE_URL is required for the couchbase driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of file, memory, sqlite, postgres, s3, couchbase; got %q", c.StorageDriver)
	}

	switch c.LogFormat {
	case "", "console", "json", "ecs":
	default:
		return fmt.Errorf("LOG_FORMAT must be console, json or ecs, got %q", c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
