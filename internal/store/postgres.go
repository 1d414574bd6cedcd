package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/resilience"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("postgres ping")
	if err := resilience.Do(ctx, retryCfg, pool.Ping); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	records      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_datasets_name ON datasets(name);
CREATE INDEX IF NOT EXISTS idx_datasets_created_at ON datasets(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveDataset(ctx context.Context, name string, records []model.Tender) (*Dataset, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal records")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO datasets (id, name, record_count, records, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, name, len(records), recordsJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert dataset")
	}

	return &Dataset{ID: id, Name: name, RecordCount: len(records), CreatedAt: now}, nil
}

func (s *PostgresStore) GetDataset(ctx context.Context, id string) (*Dataset, []model.Tender, error) {
	var ds Dataset
	var recordsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, record_count, records, created_at FROM datasets WHERE id = $1`, id,
	).Scan(&ds.ID, &ds.Name, &ds.RecordCount, &recordsJSON, &ds.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, eris.Wrap(err, "postgres: get dataset")
	}

	var records []model.Tender
	if err := json.Unmarshal(recordsJSON, &records); err != nil {
		return nil, nil, eris.Wrap(err, "postgres: unmarshal records")
	}
	return &ds, records, nil
}

func (s *PostgresStore) ListDatasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, record_count, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list datasets")
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var ds Dataset
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.RecordCount, &ds.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dataset")
		}
		out = append(out, ds)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate datasets")
}

func (s *PostgresStore) DeleteDataset(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete dataset")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
