package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/hms/hms/internal/records"
)

// SQLiteProvider keeps one row per collection in a local sqlite file.
type SQLiteProvider struct {
	db   *sql.DB
	path string
}

// NewSQLiteProvider opens (or creates) the sqlite file and its snapshot table.
func NewSQLiteProvider(path string) (*SQLiteProvider, error) {
	if path == "" {
		path = "hms.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &SQLiteProvider{db: db, path: path}, nil
}

// Path returns the sqlite file location.
func (p *SQLiteProvider) Path() string { return p.path }

func (p *SQLiteProvider) Read(ctx context.Context, kind records.Kind) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE bucket = ?`, string(kind)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}
	return payload, nil
}

func (p *SQLiteProvider) Write(ctx context.Context, kind records.Kind, payload []byte) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO snapshots(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		string(kind), payload)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}

func (p *SQLiteProvider) Driver() Driver { return DriverSQLite }

func (p *SQLiteProvider) Close() error { return p.db.Close() }
