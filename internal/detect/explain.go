package detect

import (
	"fmt"
	"math"
	"strings"

	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/report"
)

// flagContext carries the dataset-level statistics an explanation
// compares against.
type flagContext struct {
	medianValue    float64
	meanValue      float64
	totalContracts int
}

// explain builds the plain-English explanation for a flagged row,
// combining one clause per sub-rule that fired.
func (d *Detector) explain(row model.FlagRow, ctx flagContext) string {
	var parts []string

	if row.IsPriceAnomaly {
		parts = append(parts, d.explainPriceAnomaly(row, ctx))
	}
	if row.IsVendorDominance {
		parts = append(parts, explainVendorDominance(row, ctx))
	}
	if row.IsLowCompetition {
		parts = append(parts, explainLowCompetition(row))
	}

	if len(parts) == 0 {
		return "This tender has been flagged based on statistical analysis."
	}
	return strings.Join(parts, " • ")
}

func (d *Detector) explainPriceAnomaly(row model.FlagRow, ctx flagContext) string {
	var parts []string

	if row.RatioToMedian != nil && *row.RatioToMedian > 1 {
		ratio := *row.RatioToMedian
		ratioText := fmt.Sprintf("%.1f×", ratio)
		if ratio >= 10 {
			ratioText = fmt.Sprintf("%.0f×", ratio)
		}
		parts = append(parts, fmt.Sprintf(
			"This contract value (%s) is %s higher than the inflation-adjusted median (%s) for similar projects.",
			report.FormatINR(row.Tender.AdjustedRs), ratioText, report.FormatINR(ctx.medianValue)))
	}

	if row.ZScore != nil && math.Abs(*row.ZScore) > d.cfg.ZThreshold {
		parts = append(parts, fmt.Sprintf(
			"The statistical Z-score of %.2f indicates this value is significantly different from the average contract value.",
			*row.ZScore))
	}

	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf(
			"This contract value (%s) is unusually high compared to historical contracts of similar nature.",
			report.FormatINR(row.Tender.AdjustedRs)))
	}
	return strings.Join(parts, " ")
}

func explainVendorDominance(row model.FlagRow, ctx flagContext) string {
	share := 0.0
	if ctx.totalContracts > 0 {
		share = float64(row.VendorContractCount) / float64(ctx.totalContracts) * 100
	}
	s := fmt.Sprintf(
		"%s has received %d out of %d contracts (%.1f%% of all contracts) in this dataset.",
		row.Tender.Vendor, row.VendorContractCount, ctx.totalContracts, share)
	if share > 10 {
		s += " This represents a high concentration of contracts awarded to a single vendor, which may warrant further review."
	}
	return s
}

func explainLowCompetition(row model.FlagRow) string {
	var parts []string
	if row.Tender.Bidders > 0 {
		parts = append(parts, fmt.Sprintf(
			"This tender received only %d bidder(s), indicating limited competition.", row.Tender.Bidders))
	} else {
		parts = append(parts, "Bidder information for this tender is not available.")
	}
	if row.Tender.AdjustedRs > 0 {
		parts = append(parts, fmt.Sprintf(
			"The contract was awarded at %s, which is relatively high for a tender with limited competition.",
			report.FormatINR(row.Tender.AdjustedRs)))
	}
	parts = append(parts, "Research suggests that tenders with fewer bidders may result in higher contract prices.")
	return strings.Join(parts, " ")
}

// Methodology returns the plain-English description of the analysis
// approach, shown alongside flag-mode results.
func Methodology() string {
	return "This analysis uses statistical methods to identify patterns in public procurement data. " +
		"Price analysis compares contract values using Z-scores and the interquartile range (IQR) to " +
		"identify unusually high-priced contracts. Vendor concentration measures how contracts are " +
		"distributed among vendors. Competition analysis examines the relationship between the number " +
		"of bidders and final contract prices. All contract values are adjusted for inflation to ensure " +
		"fair comparison across years. Flagged tenders represent statistical anomalies that may warrant " +
		"further review but do not indicate wrongdoing."
}
