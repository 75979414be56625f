package snapshot

import (
	"context"
	"fmt"

	"github.com/hms/hms/internal/config"
)

// Open selects and constructs a provider from configuration.
func Open(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch Driver(cfg.StorageDriver) {
	case DriverFile, "":
		return NewFileProvider(cfg.DataDir)
	case DriverMemory:
		return NewMemoryProvider(), nil
	case DriverSQLite:
		return NewSQLiteProvider(cfg.SQLitePath)
	case DriverPostgres:
		return NewPostgresProvider(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	case DriverS3:
		return NewS3Provider(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Prefix:          cfg.S3Prefix,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
		})
	case DriverCouchbase:
		return NewCouchbaseProvider(CouchbaseConfig{
			URL:      cfg.CouchbaseURL,
			Username: cfg.CouchbaseUser,
			Password: cfg.CouchbasePassword,
			Bucket:   cfg.CouchbaseBucket,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.StorageDriver)
	}
}
