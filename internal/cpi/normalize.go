package cpi

import (
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/model"
)

// Normalize returns a copy of the records with AdjustedRs populated
// from the table. The input slice is never mutated. Records with an
// invalid year or non-positive value keep AdjustedRs zero and are
// excluded from downstream ratio statistics by their Valid check.
func Normalize(table *Table, records []model.Tender, baseYear int) []model.Tender {
	out := make([]model.Tender, len(records))
	copy(out, records)

	skipped := 0
	for i := range out {
		if !out[i].Valid() {
			skipped++
			continue
		}
		out[i].AdjustedRs = table.Adjust(out[i].ValueRs, out[i].AwardYear, baseYear)
	}

	if skipped > 0 {
		zap.L().Debug("cpi: skipped records during normalization",
			zap.Int("skipped", skipped),
			zap.Int("total", len(records)),
		)
	}
	return out
}
