package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/anviksha/anviksha/internal/model"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	require.NoError(t, WriteXLSX(path, sampleResult()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	names := make([]string, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Summary", "By District", "By Department", "By Year", "Vendors", "Observations"}, names)

	district := f.Sheet["By District"]
	require.NotNil(t, district)
	// Header plus two data rows.
	assert.Len(t, district.Rows, 3)
}

func TestWriteFlagXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.xlsx")
	z := 2.9
	rep := model.FlagReport{
		Flagged: []model.FlagRow{
			{
				Tender:         model.Tender{ID: "T-9", Vendor: "ABC PVT LTD", District: "Howrah", AwardYear: 2023, AdjustedRs: 50 * Lakh},
				ZScore:         &z,
				IsPriceAnomaly: true,
				Flagged:        true,
			},
		},
	}
	require.NoError(t, WriteFlagXLSX(path, rep))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	flagged := f.Sheet["Flagged"]
	require.NotNil(t, flagged)
	assert.Len(t, flagged.Rows, 2)
	assert.Equal(t, "T-9", flagged.Rows[1].Cells[0].String())
}
