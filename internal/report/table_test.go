package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anviksha/anviksha/internal/model"
)

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Narrative: "For all districts between 2019-2024, total inflation-adjusted spending was ₹1.28 crore across 20 project(s).",
		Summary: model.SummaryStats{
			TotalSpendingRs: 128 * Lakh,
			TotalProjects:   20,
			AvgCostPerKmRs:  3 * Lakh,
			TimeRange:       "2019-2024",
			DistrictsCount:  6,
			VendorsCount:    8,
		},
		ByDistrict: []model.GroupRow{
			{Key: "Howrah", TotalSpendingRs: 80 * Lakh, ProjectCount: 5, CostPerKmRs: 2 * Lakh},
			{Key: "Nadia", TotalSpendingRs: 48 * Lakh, ProjectCount: 2},
		},
		Vendors: []model.VendorStats{
			{Vendor: "ABC PVT LTD", TotalValueRs: 128 * Lakh, ContractCount: 7, AvgBidders: 4.5, SharePercent: 100},
		},
		Observations: []model.Observation{
			{
				Kind:             model.KindPriceOutlier,
				Title:            "Statistical Pattern: Above-Median Contract Value",
				Description:      "Tender X is above the median.",
				Confidence:       model.ConfidenceHigh,
				ConfidenceReason: "IQR rule",
				DoesNotImply:     "Wrongdoing.",
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "For all districts between 2019-2024")
	assert.Contains(t, out, "Projects:        20")
	assert.Contains(t, out, "Spending by district")
	assert.Contains(t, out, "Howrah")
	assert.Contains(t, out, "Statistical observations (1)")
	assert.Contains(t, out, "Does not imply: Wrongdoing.")
}

func TestWriteText_DashForMissingCostPerKm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult()))
	assert.Contains(t, buf.String(), "-")
}

func TestWriteFlagText(t *testing.T) {
	z := 2.9
	rep := model.FlagReport{
		Summary: model.FlagSummary{
			TotalTenders:   5,
			FlaggedTenders: 1,
			PriceAnomalies: 1,
			MedianValueRs:  10 * Lakh,
			MeanValueRs:    12 * Lakh,
			UniqueVendors:  3,
		},
		Flagged: []model.FlagRow{
			{
				Tender:         model.Tender{ID: "T-9", AdjustedRs: 50 * Lakh, AwardYear: 2023},
				ZScore:         &z,
				IsPriceAnomaly: true,
				Flagged:        true,
				Explanation:    "The statistical Z-score of 2.90 indicates this value is significantly different from the average contract value.",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFlagText(&buf, rep))
	out := buf.String()

	assert.Contains(t, out, "Tenders analyzed:  5")
	assert.Contains(t, out, "Flagged (union):   1")
	assert.Contains(t, out, "T-9")
	assert.Contains(t, out, "[price]")
	assert.Contains(t, out, "Z-score of 2.90")
}
