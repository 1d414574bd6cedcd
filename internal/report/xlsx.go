package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/anviksha/anviksha/internal/model"
)

// WriteXLSX exports an analysis result to an XLSX workbook with one
// sheet each for the summary, group tables, vendors, and observations.
func WriteXLSX(path string, result *model.AnalysisResult) error {
	f := xlsx.NewFile()

	if err := addSummarySheet(f, result); err != nil {
		return err
	}
	if err := addGroupSheet(f, "By District", result.ByDistrict); err != nil {
		return err
	}
	if err := addGroupSheet(f, "By Department", result.ByDepartment); err != nil {
		return err
	}
	if err := addGroupSheet(f, "By Year", result.ByYear); err != nil {
		return err
	}
	if err := addVendorSheet(f, result.Vendors); err != nil {
		return err
	}
	if err := addObservationSheet(f, result.Observations); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "report: save xlsx %s", path)
}

func addSummarySheet(f *xlsx.File, result *model.AnalysisResult) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	s := result.Summary
	addKV := func(k string, v any) {
		row := sheet.AddRow()
		row.AddCell().SetString(k)
		row.AddCell().SetValue(v)
	}
	addKV("Total spending (Rs)", s.TotalSpendingRs)
	addKV("Projects", s.TotalProjects)
	addKV("Avg cost per km (Rs)", s.AvgCostPerKmRs)
	addKV("Years", s.TimeRange)
	addKV("Districts", s.DistrictsCount)
	addKV("Vendors", s.VendorsCount)
	addKV("Narrative", result.Narrative)
	return nil
}

func addGroupSheet(f *xlsx.File, name string, rows []model.GroupRow) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %s", name)
	}
	header := sheet.AddRow()
	for _, h := range []string{"Key", "Total Spending (Rs)", "Projects", "Mean (Rs)", "Length (km)", "Cost per km (Rs)"} {
		header.AddCell().SetString(h)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Key)
		row.AddCell().SetFloat(r.TotalSpendingRs)
		row.AddCell().SetInt(r.ProjectCount)
		row.AddCell().SetFloat(r.MeanSpendingRs)
		row.AddCell().SetFloat(r.TotalLengthKm)
		row.AddCell().SetFloat(r.CostPerKmRs)
	}
	return nil
}

func addVendorSheet(f *xlsx.File, vendors []model.VendorStats) error {
	sheet, err := f.AddSheet("Vendors")
	if err != nil {
		return eris.Wrap(err, "report: add vendor sheet")
	}
	header := sheet.AddRow()
	for _, h := range []string{"Vendor", "Total Value (Rs)", "Contracts", "Avg Value (Rs)", "Avg Bidders", "Value Share %", "Count Share %"} {
		header.AddCell().SetString(h)
	}
	for _, v := range vendors {
		row := sheet.AddRow()
		row.AddCell().SetString(v.Vendor)
		row.AddCell().SetFloat(v.TotalValueRs)
		row.AddCell().SetInt(v.ContractCount)
		row.AddCell().SetFloat(v.AvgValueRs)
		row.AddCell().SetFloat(v.AvgBidders)
		row.AddCell().SetFloat(v.SharePercent)
		row.AddCell().SetFloat(v.CountShare)
	}
	return nil
}

func addObservationSheet(f *xlsx.File, observations []model.Observation) error {
	sheet, err := f.AddSheet("Observations")
	if err != nil {
		return eris.Wrap(err, "report: add observation sheet")
	}
	header := sheet.AddRow()
	for _, h := range []string{"Kind", "Subject", "Title", "Description", "Confidence", "Basis", "Does Not Imply", "Value (Rs)", "Year", "Bidders"} {
		header.AddCell().SetString(h)
	}
	for _, o := range observations {
		row := sheet.AddRow()
		row.AddCell().SetString(string(o.Kind))
		row.AddCell().SetString(o.Subject)
		row.AddCell().SetString(o.Title)
		row.AddCell().SetString(o.Description)
		row.AddCell().SetString(string(o.Confidence))
		row.AddCell().SetString(o.ConfidenceReason)
		row.AddCell().SetString(o.DoesNotImply)
		row.AddCell().SetFloat(o.ValueRs)
		row.AddCell().SetInt(o.Year)
		row.AddCell().SetInt(o.Bidders)
	}
	return nil
}

// WriteFlagXLSX exports a flag report to an XLSX workbook.
func WriteFlagXLSX(path string, rep model.FlagReport) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Flagged")
	if err != nil {
		return eris.Wrap(err, "report: add flagged sheet")
	}
	header := sheet.AddRow()
	for _, h := range []string{"Tender", "Vendor", "District", "Year", "Adjusted (Rs)", "Z-Score", "Ratio to Median", "Vendor Contracts", "Price Anomaly", "Vendor Dominance", "Low Competition", "Explanation"} {
		header.AddCell().SetString(h)
	}
	for _, r := range rep.Flagged {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Tender.ID)
		row.AddCell().SetString(r.Tender.Vendor)
		row.AddCell().SetString(r.Tender.District)
		row.AddCell().SetInt(r.Tender.AwardYear)
		row.AddCell().SetFloat(r.Tender.AdjustedRs)
		if r.ZScore != nil {
			row.AddCell().SetFloat(*r.ZScore)
		} else {
			row.AddCell().SetString("")
		}
		if r.RatioToMedian != nil {
			row.AddCell().SetFloat(*r.RatioToMedian)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetInt(r.VendorContractCount)
		row.AddCell().SetBool(r.IsPriceAnomaly)
		row.AddCell().SetBool(r.IsVendorDominance)
		row.AddCell().SetBool(r.IsLowCompetition)
		row.AddCell().SetString(r.Explanation)
	}

	return eris.Wrapf(f.Save(path), "report: save xlsx %s", path)
}
