// Package narrative composes the analyst-facing summary paragraph for
// a filtered view. The composer never propagates a failure to its
// caller: every internal problem resolves to a fixed fallback string.
package narrative

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/report"
)

// Fixed fallback strings. Callers render these verbatim.
const (
	FallbackNoData = "No data available for the selected filters."
	FallbackFailed = "Analysis summary could not be generated."
)

// Compose renders a one-paragraph summary of the filtered view: filter
// context, year span, total adjusted spending, project count, cost per
// km when length data exists, and a count-by-kind sentence when
// observations were detected.
func Compose(summary model.SummaryStats, observations []model.Observation, filter model.Filter) (out string) {
	// The composer must never crash its caller.
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("narrative: compose panicked", zap.Any("panic", r))
			out = FallbackFailed
		}
	}()

	if summary.TotalProjects == 0 {
		return FallbackNoData
	}

	var b strings.Builder

	fmt.Fprintf(&b, "For %s between %s, total inflation-adjusted spending was %s across %d project(s). ",
		filterContext(filter), summary.TimeRange,
		report.FormatINR(summary.TotalSpendingRs), summary.TotalProjects)

	if summary.AvgCostPerKmRs > 0 {
		fmt.Fprintf(&b, "Average cost per km was %s. ", report.FormatINR(summary.AvgCostPerKmRs))
	}

	counts := model.CountByKind(observations)
	highCost := counts[model.KindPriceOutlier]
	lowCompetition := counts[model.KindLowCompetition]

	if highCost > 0 || lowCompetition > 0 {
		var kinds []string
		if highCost > 0 {
			kinds = append(kinds, fmt.Sprintf("%d above-median contract value(s)", highCost))
		}
		if lowCompetition > 0 {
			kinds = append(kinds, fmt.Sprintf("%d limited-bidder project(s)", lowCompetition))
		}
		fmt.Fprintf(&b, "Analysis identified %s. See statistical observations below for details.",
			strings.Join(kinds, " and "))
	} else {
		b.WriteString("All metrics remained within expected ranges for the selected dataset.")
	}

	return b.String()
}

func filterContext(f model.Filter) string {
	var parts []string
	if f.District != "" && f.District != "All" {
		parts = append(parts, f.District)
	}
	if f.Department != "" && f.Department != "All" {
		parts = append(parts, f.Department)
	}
	if len(parts) == 0 {
		return "all districts"
	}
	return strings.Join(parts, ", ")
}
