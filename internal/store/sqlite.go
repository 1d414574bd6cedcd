package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/anviksha/anviksha/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode. Use ":memory:" for tests.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	records      TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_datasets_name ON datasets(name);
CREATE INDEX IF NOT EXISTS idx_datasets_created_at ON datasets(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDataset(ctx context.Context, name string, records []model.Tender) (*Dataset, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal records")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO datasets (id, name, record_count, records, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, len(records), string(recordsJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert dataset")
	}

	return &Dataset{ID: id, Name: name, RecordCount: len(records), CreatedAt: now}, nil
}

func (s *SQLiteStore) GetDataset(ctx context.Context, id string) (*Dataset, []model.Tender, error) {
	var ds Dataset
	var recordsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, record_count, records, created_at FROM datasets WHERE id = ?`, id,
	).Scan(&ds.ID, &ds.Name, &ds.RecordCount, &recordsJSON, &ds.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: get dataset")
	}

	var records []model.Tender
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: unmarshal records")
	}
	return &ds, records, nil
}

func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, record_count, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list datasets")
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var ds Dataset
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.RecordCount, &ds.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dataset")
		}
		out = append(out, ds)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate datasets")
}

func (s *SQLiteStore) DeleteDataset(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete dataset")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
