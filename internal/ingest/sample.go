package ingest

import (
	_ "embed"
	"strings"

	"github.com/anviksha/anviksha/internal/model"
)

// Representative subset of publicly available West Bengal road tender
// data, shipped for demos and tests.
//
//go:embed sample_data.csv
var sampleCSV string

// SampleData parses the embedded reference dataset.
func SampleData() ([]model.Tender, error) {
	return ParseCSV(strings.NewReader(sampleCSV))
}
