package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anviksha/anviksha/internal/config"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_SaveDataset(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO datasets").
		WithArgs(pgxmock.AnyArg(), "wb-roads", 2, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ds, err := s.SaveDataset(context.Background(), "wb-roads", testRecords())
	require.NoError(t, err)
	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, 2, ds.RecordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetDataset(t *testing.T) {
	s, mock := newMockStore(t)

	records := testRecords()
	recordsJSON, err := json.Marshal(records)
	require.NoError(t, err)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, record_count, records, created_at FROM datasets").
		WithArgs("abc-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "record_count", "records", "created_at"}).
			AddRow("abc-123", "wb-roads", 2, recordsJSON, now))

	ds, got, err := s.GetDataset(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "wb-roads", ds.Name)
	require.Len(t, got, 2)
	assert.Equal(t, "T-01", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetDataset_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, name, record_count, records, created_at FROM datasets").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, _, err := s.GetDataset(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListDatasets(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, record_count, created_at FROM datasets").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "record_count", "created_at"}).
			AddRow("a", "first", 10, now).
			AddRow("b", "second", 20, now))

	list, err := s.ListDatasets(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteDataset(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM datasets").
		WithArgs("abc-123").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, s.DeleteDataset(context.Background(), "abc-123"))

	mock.ExpectExec("DELETE FROM datasets").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, s.DeleteDataset(context.Background(), "missing"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
