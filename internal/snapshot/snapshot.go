// Package snapshot provides the persistence backends for the record store.
// A provider stores one opaque payload per collection and knows nothing about
// its encoding. Writing a payload replaces the previous one for that
// collection only; there is no atomicity across collections.
package snapshot

import (
	"context"
	"errors"

	"github.com/hms/hms/internal/records"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrNotFound is returned by Read when nothing was ever saved for a collection.
	ErrNotFound = errors.New("snapshot not found")
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Driver identifies a concrete provider implementation.
type Driver string

const (
	DriverFile      Driver = "file"      // one JSON file per collection (default)
	DriverMemory    Driver = "memory"    // in-process only (tests / ephemeral)
	DriverSQLite    Driver = "sqlite"    // embedded sqlite file
	DriverPostgres  Driver = "postgres"  // PostgreSQL server
	DriverS3        Driver = "s3"        // S3 / MinIO compatible bucket
	DriverCouchbase Driver = "couchbase" // Couchbase bucket, default collection
)

// Provider is the save/load contract the store persists through.
type Provider interface {
	Read(ctx context.Context, kind records.Kind) ([]byte, error)
	Write(ctx context.Context, kind records.Kind, payload []byte) error
	Driver() Driver
	Close() error
}
