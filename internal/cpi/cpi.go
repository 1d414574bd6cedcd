// Package cpi provides the consumer-price-index table and the
// inflation normalizer that converts tender values to base-year rupees.
package cpi

import (
	"fmt"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultBaseYear is the reference year all values are normalized to.
const DefaultBaseYear = 2024

// defaultIndex is the Indian CPI series (2012 = 100) published by
// RBI/MoSPI. Representative annual averages; override with a YAML file
// for production-grade figures.
var defaultIndex = map[int]float64{
	2018: 140.2,
	2019: 150.0,
	2020: 153.8,
	2021: 167.3,
	2022: 176.7,
	2023: 183.9,
	2024: 190.0,
}

// Table is an immutable sparse year→index mapping. Construct once at
// startup; safe for unsynchronized concurrent reads afterwards.
type Table struct {
	index map[int]float64
	years []int // sorted keys
}

// NewTable builds a Table from the given series. At least one entry
// with a positive index value is required.
func NewTable(series map[int]float64) (*Table, error) {
	if len(series) == 0 {
		return nil, eris.New("cpi: index series is empty")
	}
	index := make(map[int]float64, len(series))
	years := make([]int, 0, len(series))
	for year, v := range series {
		if v <= 0 {
			return nil, eris.Errorf("cpi: index for %d must be positive, got %g", year, v)
		}
		index[year] = v
		years = append(years, year)
	}
	sort.Ints(years)
	return &Table{index: index, years: years}, nil
}

// Default returns the built-in Indian CPI table.
func Default() *Table {
	t, err := NewTable(defaultIndex)
	if err != nil {
		panic(fmt.Sprintf("cpi: default table invalid: %v", err))
	}
	return t
}

// indexFile is the YAML shape for a table override.
type indexFile struct {
	BaseYear int             `yaml:"base_year"`
	Index    map[int]float64 `yaml:"index"`
}

// LoadTable reads a year→index series from a YAML file. Returns the
// table and the file's base year (0 if unset).
func LoadTable(path string) (*Table, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "cpi: read index file %s", path)
	}
	var f indexFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, 0, eris.Wrapf(err, "cpi: parse index file %s", path)
	}
	t, err := NewTable(f.Index)
	if err != nil {
		return nil, 0, err
	}
	return t, f.BaseYear, nil
}

// Years returns the known years in ascending order.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Value returns the index for a year. Years below the table minimum
// clamp to the minimum entry, years above clamp to the maximum, and
// interior gaps are linearly interpolated between the nearest known
// years.
func (t *Table) Value(year int) float64 {
	if v, ok := t.index[year]; ok {
		return v
	}

	min, max := t.years[0], t.years[len(t.years)-1]
	if year < min {
		return t.index[min]
	}
	if year > max {
		return t.index[max]
	}

	// Nearest known years below and above.
	i := sort.SearchInts(t.years, year)
	prev, next := t.years[i-1], t.years[i]
	prevV, nextV := t.index[prev], t.index[next]
	return prevV + (nextV-prevV)*float64(year-prev)/float64(next-prev)
}

// Multiplier returns the factor that converts a value awarded in year
// to baseYear rupees. A degenerate zero index yields 1.
func (t *Table) Multiplier(year, baseYear int) float64 {
	yearIdx := t.Value(year)
	if yearIdx == 0 {
		return 1
	}
	return t.Value(baseYear) / yearIdx
}

// Adjust converts value awarded in year to baseYear rupees:
//
//	adjusted = value × index(baseYear) / index(year)
//
// When year == baseYear this is exact identity. A zero index for the
// award year returns the value unchanged rather than dividing by zero.
func (t *Table) Adjust(value float64, year, baseYear int) float64 {
	return value * t.Multiplier(year, baseYear)
}

// Info returns the plain-English methodology explanation shown to
// analysts alongside adjusted figures.
func Info(baseYear int) string {
	return fmt.Sprintf(
		"Inflation adjustment converts all contract values to %d prices using "+
			"India's Consumer Price Index (CPI). This allows fair comparison of "+
			"contracts across different years: a contract awarded in an earlier "+
			"year has its value increased to reflect %d purchasing power.",
		baseYear, baseYear)
}
