package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVendorName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ABC Private Limited", "ABC PVT LTD"},
		{"abc pvt. ltd.", "ABC PVT LTD"},
		{"  Shree  Constructions   LTD.  ", "SHREE CONSTRUCTIONS LTD"},
		{"Roy & Sons", "ROY AND SONS"},
		{"M.K. Builders, Inc.", "MK BUILDERS INC"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeVendorName(c.in), "input %q", c.in)
	}
}

func TestCleanNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"₹1,23,456.78", 123456.78, true},
		{"Rs. 500", 500, true},
		{"INR 42", 42, true},
		{"  3.14 ", 3.14, true},
		{"-12", -12, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"₹", 0, false},
	}
	for _, c := range cases {
		got, ok := CleanNumeric(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "input %q", c.in)
		}
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2023", 2023, true},
		{"15/03/2021", 2021, true},
		{"2019-03-15", 2019, true},
		{"awarded 1998", 1998, true},
		{"", 0, false},
		{"unknown", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseYear(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseCSV_ColumnDetection(t *testing.T) {
	data := `Reference,District Name,Contractor,Award_Date,Contract_Value,Length (km),Num_Bidders
T-01,Howrah,ABC Pvt Ltd,2022-06-01,50000000,2.5,4
T-02,Nadia,XYZ Limited,2023,60000000,3.0,5
`
	records, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "T-01", records[0].ID)
	assert.Equal(t, "Howrah", records[0].District)
	assert.Equal(t, "ABC PVT LTD", records[0].Vendor)
	assert.Equal(t, 2022, records[0].AwardYear)
	assert.Equal(t, 50000000.0, records[0].ValueRs)
	assert.Equal(t, 2.5, records[0].LengthKm)
	assert.Equal(t, 4, records[0].Bidders)
	assert.Equal(t, "XYZ LTD", records[1].Vendor)
}

func TestParseCSV_CroreValues(t *testing.T) {
	data := `tender_id,vendor,year,value_cr
T-01,ABC,2022,4.5
`
	records, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 4.5*1_00_00_000, records[0].ValueRs, 1e-3)
}

func TestParseCSV_DropsBadRows(t *testing.T) {
	data := `tender_id,vendor,year,value
T-01,ABC,2022,100
T-02,ABC,2022,not-a-number
T-03,ABC,2022,-5
T-04,ABC,1999,100
T-05,,2022,100
T-06,DEF,2022,200
`
	records, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "T-01", records[0].ID)
	assert.Equal(t, "T-06", records[1].ID)
}

func TestParseCSV_FallbackFields(t *testing.T) {
	data := `vendor,year,value
ABC,2022,100
`
	records, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ROW-002", records[0].ID)
	assert.Equal(t, "Unknown", records[0].District)
	assert.Equal(t, "Unknown", records[0].Department)
	assert.Zero(t, records[0].Bidders)
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("tender_id,district\nT-01,Howrah\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value column")
}

func TestSampleData(t *testing.T) {
	records, err := SampleData()
	require.NoError(t, err)
	assert.Len(t, records, 20)

	for _, r := range records {
		assert.True(t, r.Valid(), "record %s", r.ID)
		assert.NotEmpty(t, r.District)
		assert.NotEmpty(t, r.Vendor)
	}
}
