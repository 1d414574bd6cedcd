// Package aggregate computes summary statistics and grouped tables
// over normalized tender records.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/stats"
)

// Summary computes the fixed-shape summary for a filtered view. An
// empty input yields all-zero numeric fields and an "N/A" time range.
func Summary(records []model.Tender) model.SummaryStats {
	if len(records) == 0 {
		return model.SummaryStats{TimeRange: "N/A"}
	}

	var totalSpending, totalLength float64
	minYear, maxYear := records[0].AwardYear, records[0].AwardYear
	districts := make(map[string]struct{})
	vendors := make(map[string]struct{})

	for _, t := range records {
		totalSpending += t.AdjustedRs
		totalLength += t.LengthKm
		if t.AwardYear < minYear {
			minYear = t.AwardYear
		}
		if t.AwardYear > maxYear {
			maxYear = t.AwardYear
		}
		districts[t.District] = struct{}{}
		vendors[t.Vendor] = struct{}{}
	}

	// Cost per km is defined only when length data exists.
	var avgCostPerKm float64
	if totalLength > 0 {
		avgCostPerKm = totalSpending / totalLength
	}

	timeRange := fmt.Sprintf("%d-%d", minYear, maxYear)
	if minYear == maxYear {
		timeRange = fmt.Sprintf("%d", minYear)
	}

	return model.SummaryStats{
		TotalSpendingRs: totalSpending,
		TotalProjects:   len(records),
		AvgCostPerKmRs:  avgCostPerKm,
		TimeRange:       timeRange,
		DistrictsCount:  len(districts),
		VendorsCount:    len(vendors),
	}
}

// ByDistrict groups spending by district, sorted by total descending.
func ByDistrict(records []model.Tender) []model.GroupRow {
	return groupBy(records, func(t model.Tender) string { return t.District })
}

// ByDepartment groups spending by department, sorted by total descending.
func ByDepartment(records []model.Tender) []model.GroupRow {
	return groupBy(records, func(t model.Tender) string { return t.Department })
}

// ByYear groups spending by award year, sorted by year ascending.
func ByYear(records []model.Tender) []model.GroupRow {
	rows := groupBy(records, func(t model.Tender) string { return fmt.Sprintf("%d", t.AwardYear) })
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// ByVendor groups spending by vendor, sorted by total descending.
func ByVendor(records []model.Tender) []model.GroupRow {
	return groupBy(records, func(t model.Tender) string { return t.Vendor })
}

func groupBy(records []model.Tender, key func(model.Tender) string) []model.GroupRow {
	groups := make(map[string]*model.GroupRow)
	for _, t := range records {
		k := key(t)
		row, ok := groups[k]
		if !ok {
			row = &model.GroupRow{Key: k}
			groups[k] = row
		}
		row.TotalSpendingRs += t.AdjustedRs
		row.ProjectCount++
		row.TotalLengthKm += t.LengthKm
	}

	rows := make([]model.GroupRow, 0, len(groups))
	for _, row := range groups {
		row.MeanSpendingRs = row.TotalSpendingRs / float64(row.ProjectCount)
		if row.TotalLengthKm > 0 {
			row.CostPerKmRs = row.TotalSpendingRs / row.TotalLengthKm
		}
		rows = append(rows, *row)
	}

	// Stable descending by total; ties broken by key for deterministic output.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpendingRs != rows[j].TotalSpendingRs {
			return rows[i].TotalSpendingRs > rows[j].TotalSpendingRs
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// VendorStats computes per-vendor aggregates and shares. Value share
// is vendor total / overall total × 100; when the overall total is 0
// every share is 0. Sorted by total value descending.
func VendorStats(records []model.Tender) []model.VendorStats {
	type acc struct {
		total   float64
		count   int
		bidders int
	}
	byVendor := make(map[string]*acc)
	var overallTotal float64
	for _, t := range records {
		a, ok := byVendor[t.Vendor]
		if !ok {
			a = &acc{}
			byVendor[t.Vendor] = a
		}
		a.total += t.AdjustedRs
		a.count++
		a.bidders += t.Bidders
		overallTotal += t.AdjustedRs
	}

	out := make([]model.VendorStats, 0, len(byVendor))
	for vendor, a := range byVendor {
		vs := model.VendorStats{
			Vendor:        vendor,
			TotalValueRs:  a.total,
			ContractCount: a.count,
			AvgValueRs:    a.total / float64(a.count),
			AvgBidders:    float64(a.bidders) / float64(a.count),
		}
		if overallTotal > 0 {
			vs.SharePercent = a.total / overallTotal * 100
		}
		if len(records) > 0 {
			vs.CountShare = float64(a.count) / float64(len(records)) * 100
		}
		out = append(out, vs)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValueRs != out[j].TotalValueRs {
			return out[i].TotalValueRs > out[j].TotalValueRs
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}

// AdjustedValues extracts the adjusted-value column for records that
// are valid for ratio statistics.
func AdjustedValues(records []model.Tender) []float64 {
	out := make([]float64, 0, len(records))
	for _, t := range records {
		if t.Valid() {
			out = append(out, t.AdjustedRs)
		}
	}
	return out
}

// MedianBidders returns the median bidder count over records that
// carry competition data (bidders > 0).
func MedianBidders(records []model.Tender) float64 {
	vals := make([]float64, 0, len(records))
	for _, t := range records {
		if t.Bidders > 0 {
			vals = append(vals, float64(t.Bidders))
		}
	}
	return stats.Median(vals)
}
