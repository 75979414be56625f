package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/records"
)

// pgQuerier is the subset of *pgxpool.Pool the provider uses.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresProvider keeps one row per collection in the hms_snapshots table.
type PostgresProvider struct {
	db    pgQuerier
	close func()
}

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS hms_snapshots (
	bucket     TEXT PRIMARY KEY,
	payload    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPool opens and pings a pgx connection pool.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns > 0 {
		cfg.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewPostgresProvider connects to databaseURL and ensures the snapshot table exists.
func NewPostgresProvider(ctx context.Context, databaseURL string, maxConns, minConns int32) (*PostgresProvider, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("postgres provider requires a database url")
	}
	pool, err := NewPool(ctx, databaseURL, maxConns, minConns)
	if err != nil {
		return nil, err
	}
	p, err := newPostgresProvider(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	p.close = pool.Close
	return p, nil
}

func newPostgresProvider(ctx context.Context, db pgQuerier) (*PostgresProvider, error) {
	if _, err := db.Exec(ctx, createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("create hms_snapshots table: %w", err)
	}
	return &PostgresProvider{db: db}, nil
}

func (p *PostgresProvider) Read(ctx context.Context, kind records.Kind) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRow(ctx, `SELECT payload FROM hms_snapshots WHERE bucket = $1`, string(kind)).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}
	return payload, nil
}

func (p *PostgresProvider) Write(ctx context.Context, kind records.Kind, payload []byte) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO hms_snapshots (bucket, payload, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		string(kind), payload)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}

func (p *PostgresProvider) Driver() Driver { return DriverPostgres }

func (p *PostgresProvider) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}
