package detect

import (
	"math"

	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/aggregate"
	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/stats"
)

// Flag runs the upload-analysis profile over the records: Z-score
// price anomalies, vendor dominance (the stricter flagging-mode test),
// and low competition relative to the median bidder count. A record is
// flagged when any sub-rule fires; the flagged subset is a union, not
// a single prioritized cause.
//
// Records with non-computable values are carried through with nil
// statistics and excluded from the mean/stddev/median, never treated
// as zero.
func (d *Detector) Flag(records []model.Tender) model.FlagReport {
	values := aggregate.AdjustedValues(records)
	mean := stats.Mean(values)
	std := stats.StdDev(values)
	median := stats.Median(values)
	medianBidders := aggregate.MedianBidders(records)

	// Per-vendor contract counts over the full set.
	vendorCounts := make(map[string]int)
	for _, t := range records {
		vendorCounts[t.Vendor]++
	}
	var meanPerVendor float64
	if len(vendorCounts) > 0 {
		meanPerVendor = float64(len(records)) / float64(len(vendorCounts))
	}

	rep := model.FlagReport{
		Rows: make([]model.FlagRow, 0, len(records)),
		Summary: model.FlagSummary{
			TotalTenders:  len(records),
			MedianValueRs: median,
			MeanValueRs:   mean,
			UniqueVendors: len(vendorCounts),
		},
	}

	for _, t := range records {
		row := model.FlagRow{
			Tender:              t,
			VendorContractCount: vendorCounts[t.Vendor],
		}

		if t.Valid() {
			// Z-score is defined only when the spread is non-zero.
			if std > 0 {
				z := (t.AdjustedRs - mean) / std
				row.ZScore = &z
				row.IsPriceAnomaly = math.Abs(z) > d.cfg.ZThreshold
			}
			if median > 0 {
				ratio := t.AdjustedRs / median
				row.RatioToMedian = &ratio
			}
		}

		if len(records) > 0 {
			countShare := float64(row.VendorContractCount) / float64(len(records))
			row.IsVendorDominance = float64(row.VendorContractCount) > meanPerVendor*d.cfg.DominanceCountFactor ||
				countShare*100 > d.cfg.DominanceSharePct
		}

		if t.Bidders > 0 && medianBidders > 0 {
			row.IsLowCompetition = float64(t.Bidders) < medianBidders*0.5
		}

		row.Flagged = row.IsPriceAnomaly || row.IsVendorDominance || row.IsLowCompetition
		if row.Flagged {
			row.Explanation = d.explain(row, flagContext{
				medianValue:    median,
				meanValue:      mean,
				totalContracts: len(records),
			})
			rep.Flagged = append(rep.Flagged, row)
		}

		if row.IsPriceAnomaly {
			rep.Summary.PriceAnomalies++
		}
		if row.IsVendorDominance {
			rep.Summary.VendorDominance++
		}
		if row.IsLowCompetition {
			rep.Summary.LowCompetition++
		}
		rep.Rows = append(rep.Rows, row)
	}
	rep.Summary.FlaggedTenders = len(rep.Flagged)

	zap.L().Info("detect: flag pass complete",
		zap.Int("tenders", rep.Summary.TotalTenders),
		zap.Int("flagged", rep.Summary.FlaggedTenders),
		zap.Int("price_anomalies", rep.Summary.PriceAnomalies),
		zap.Int("vendor_dominance", rep.Summary.VendorDominance),
		zap.Int("low_competition", rep.Summary.LowCompetition),
	)
	return rep
}
