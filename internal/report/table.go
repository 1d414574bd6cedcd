package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/anviksha/anviksha/internal/model"
)

// WriteText renders an analysis result as plain text for the terminal.
func WriteText(w io.Writer, result *model.AnalysisResult) error {
	fmt.Fprintln(w, result.Narrative)
	fmt.Fprintln(w)

	s := result.Summary
	fmt.Fprintf(w, "Total spending:  %s\n", FormatINR(s.TotalSpendingRs))
	fmt.Fprintf(w, "Projects:        %s\n", FormatCount(s.TotalProjects))
	if s.AvgCostPerKmRs > 0 {
		fmt.Fprintf(w, "Avg cost per km: %s\n", FormatINR(s.AvgCostPerKmRs))
	}
	fmt.Fprintf(w, "Years:           %s\n", s.TimeRange)
	fmt.Fprintf(w, "Districts:       %d\n", s.DistrictsCount)
	fmt.Fprintf(w, "Vendors:         %d\n", s.VendorsCount)

	if len(result.ByDistrict) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Spending by district")
		if err := writeGroupTable(w, result.ByDistrict); err != nil {
			return err
		}
	}
	if len(result.ByDepartment) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Spending by department")
		if err := writeGroupTable(w, result.ByDepartment); err != nil {
			return err
		}
	}
	if len(result.ByYear) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Spending by year")
		if err := writeGroupTable(w, result.ByYear); err != nil {
			return err
		}
	}
	if len(result.Vendors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Vendors")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VENDOR\tTOTAL\tCONTRACTS\tAVG BIDDERS\tVALUE SHARE")
		for _, v := range result.Vendors {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f%%\n",
				v.Vendor, FormatCrore(v.TotalValueRs), v.ContractCount, v.AvgBidders, v.SharePercent)
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "report: flush vendor table")
		}
	}

	if len(result.Observations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Statistical observations (%d)\n", len(result.Observations))
		for i, o := range result.Observations {
			fmt.Fprintf(w, "\n%d. %s [confidence: %s]\n", i+1, o.Title, o.Confidence)
			fmt.Fprintf(w, "   %s\n", o.Description)
			fmt.Fprintf(w, "   Basis: %s\n", o.ConfidenceReason)
			fmt.Fprintf(w, "   Does not imply: %s\n", o.DoesNotImply)
		}
	}
	return nil
}

func writeGroupTable(w io.Writer, rows []model.GroupRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTOTAL\tPROJECTS\tCOST/KM")
	for _, r := range rows {
		costPerKm := "-"
		if r.CostPerKmRs > 0 {
			costPerKm = FormatINR(r.CostPerKmRs)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Key, FormatCrore(r.TotalSpendingRs), r.ProjectCount, costPerKm)
	}
	return eris.Wrap(tw.Flush(), "report: flush group table")
}

// WriteFlagText renders a flag report as plain text.
func WriteFlagText(w io.Writer, rep model.FlagReport) error {
	s := rep.Summary
	fmt.Fprintf(w, "Tenders analyzed:  %s\n", FormatCount(s.TotalTenders))
	fmt.Fprintf(w, "Median value:      %s\n", FormatINR(s.MedianValueRs))
	fmt.Fprintf(w, "Mean value:        %s\n", FormatINR(s.MeanValueRs))
	fmt.Fprintf(w, "Unique vendors:    %d\n", s.UniqueVendors)
	fmt.Fprintf(w, "Price anomalies:   %d\n", s.PriceAnomalies)
	fmt.Fprintf(w, "Vendor dominance:  %d\n", s.VendorDominance)
	fmt.Fprintf(w, "Low competition:   %d\n", s.LowCompetition)
	fmt.Fprintf(w, "Flagged (union):   %d\n", s.FlaggedTenders)

	if len(rep.Flagged) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flagged tenders")
	for _, row := range rep.Flagged {
		var reasons []string
		if row.IsPriceAnomaly {
			reasons = append(reasons, "price")
		}
		if row.IsVendorDominance {
			reasons = append(reasons, "vendor dominance")
		}
		if row.IsLowCompetition {
			reasons = append(reasons, "low competition")
		}
		fmt.Fprintf(w, "\n%s  %s  %d  [%s]\n",
			row.Tender.ID, FormatINR(row.Tender.AdjustedRs), row.Tender.AwardYear,
			strings.Join(reasons, ", "))
		if row.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", row.Explanation)
		}
	}
	return nil
}
