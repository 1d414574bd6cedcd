package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/model"
)

// columnCandidates maps a canonical field to the header substrings it
// may appear under. Detection is a documented heuristic belonging to
// this boundary, not to the engine.
var columnCandidates = map[string][]string{
	"id":         {"tender_id", "tender id", "reference", "id"},
	"district":   {"district"},
	"department": {"department", "dept", "organization", "agency"},
	"road_type":  {"road_type", "road type", "category"},
	"vendor":     {"vendor", "contractor", "bidder_name", "company", "firm"},
	"year":       {"award_year", "year", "award_date", "tender_date", "contract_date", "date"},
	"value":      {"tender_value", "contract_value", "amount", "value", "price"},
	"length":     {"length"},
	"bidders":    {"bidders", "num_bidders", "bidder_count"},
}

// columnMap holds detected header indexes, -1 where absent.
type columnMap struct {
	id, district, department, roadType, vendor, year, value, length, bidders int
	valueInCrore                                                             bool
}

func detectColumns(header []string) (columnMap, error) {
	find := func(field string) int {
		for _, cand := range columnCandidates[field] {
			for i, col := range header {
				if strings.Contains(strings.ToLower(strings.TrimSpace(col)), cand) {
					return i
				}
			}
		}
		return -1
	}

	m := columnMap{
		id:         find("id"),
		district:   find("district"),
		department: find("department"),
		roadType:   find("road_type"),
		vendor:     find("vendor"),
		year:       find("year"),
		value:      find("value"),
		length:     find("length"),
		bidders:    find("bidders"),
	}
	if m.value < 0 {
		return m, eris.New("ingest: no contract value column detected")
	}
	if m.vendor < 0 {
		return m, eris.New("ingest: no vendor column detected")
	}
	if m.year < 0 {
		return m, eris.New("ingest: no award year or date column detected")
	}
	// Values published in crores are converted to rupees.
	m.valueInCrore = strings.Contains(strings.ToLower(header[m.value]), "cr")
	return m, nil
}

// ParseCSV reads a procurement CSV from r and returns cleaned tender
// records. Rows with an unparseable value or year, a missing vendor,
// or a non-positive value are dropped and counted, never zero-filled.
func ParseCSV(r io.Reader) ([]model.Tender, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read header")
	}
	cols, err := detectColumns(header)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []model.Tender
	dropped := 0
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read row %d", line)
		}
		line++

		value, ok := CleanNumeric(cell(row, cols.value))
		if !ok || value <= 0 {
			dropped++
			continue
		}
		if cols.valueInCrore {
			value *= 1_00_00_000
		}

		year, ok := ParseYear(cell(row, cols.year))
		if !ok || year <= 2000 {
			dropped++
			continue
		}

		vendor := NormalizeVendorName(cell(row, cols.vendor))
		if vendor == "" {
			dropped++
			continue
		}

		t := model.Tender{
			ID:         cell(row, cols.id),
			District:   orUnknown(cell(row, cols.district)),
			Department: orUnknown(cell(row, cols.department)),
			RoadType:   cell(row, cols.roadType),
			Vendor:     vendor,
			AwardYear:  year,
			ValueRs:    value,
		}
		if t.ID == "" {
			t.ID = fmt.Sprintf("ROW-%03d", line)
		}
		if length, ok := CleanNumeric(cell(row, cols.length)); ok && length > 0 {
			t.LengthKm = length
		}
		if bidders, ok := CleanNumeric(cell(row, cols.bidders)); ok && bidders > 0 {
			t.Bidders = int(bidders)
		}
		records = append(records, t)
	}

	zap.L().Info("ingest: csv parsed",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped),
	)
	return records, nil
}

// ParseCSVFile opens and parses a CSV dataset from disk.
func ParseCSVFile(path string) ([]model.Tender, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()
	return ParseCSV(f)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
