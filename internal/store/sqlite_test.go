package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anviksha/anviksha/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRecords() []model.Tender {
	return []model.Tender{
		{ID: "T-01", District: "Howrah", Vendor: "ABC PVT LTD", AwardYear: 2022, ValueRs: 5_00_00_000, LengthKm: 2.5, Bidders: 4},
		{ID: "T-02", District: "Nadia", Vendor: "XYZ LTD", AwardYear: 2023, ValueRs: 6_00_00_000, Bidders: 5},
	}
}

func TestSQLite_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ds, err := s.SaveDataset(ctx, "wb-roads", testRecords())
	require.NoError(t, err)
	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "wb-roads", ds.Name)
	assert.Equal(t, 2, ds.RecordCount)

	got, records, err := s.GetDataset(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ID, got.ID)
	require.Len(t, records, 2)
	assert.Equal(t, "T-01", records[0].ID)
	assert.Equal(t, "ABC PVT LTD", records[0].Vendor)
	assert.Equal(t, 5_00_00_000.0, records[0].ValueRs)
	assert.Equal(t, 4, records[0].Bidders)
}

func TestSQLite_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.GetDataset(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	list, err := s.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.SaveDataset(ctx, "first", testRecords())
	require.NoError(t, err)
	_, err = s.SaveDataset(ctx, "second", testRecords())
	require.NoError(t, err)

	list, err = s.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSQLite_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ds, err := s.SaveDataset(ctx, "doomed", testRecords())
	require.NoError(t, err)

	require.NoError(t, s.DeleteDataset(ctx, ds.ID))
	_, _, err = s.GetDataset(ctx, ds.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteDataset(ctx, ds.ID), ErrNotFound)
}
