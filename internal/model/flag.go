package model

// FlagRow is one record annotated by flag mode. Pointer fields are nil
// when the underlying statistic was not computable (missing data or a
// zero denominator); they are never coerced to zero.
type FlagRow struct {
	Tender              Tender   `json:"tender"`
	ZScore              *float64 `json:"z_score,omitempty"`
	RatioToMedian       *float64 `json:"ratio_to_median,omitempty"`
	VendorContractCount int      `json:"vendor_contract_count"`
	IsPriceAnomaly      bool     `json:"is_price_anomaly"`
	IsVendorDominance   bool     `json:"is_vendor_dominance"`
	IsLowCompetition    bool     `json:"is_low_competition"`
	Flagged             bool     `json:"flagged"` // union of the three sub-rules
	Explanation         string   `json:"explanation,omitempty"`
}

// FlagReport is the output of a flag-mode pass over an uploaded dataset.
type FlagReport struct {
	Rows    []FlagRow   `json:"rows"`
	Flagged []FlagRow   `json:"flagged"`
	Summary FlagSummary `json:"summary"`
}

// FlagSummary counts sub-rule hits across a flag-mode pass.
type FlagSummary struct {
	TotalTenders    int     `json:"total_tenders"`
	MedianValueRs   float64 `json:"median_value_rs"`
	MeanValueRs     float64 `json:"mean_value_rs"`
	UniqueVendors   int     `json:"unique_vendors"`
	PriceAnomalies  int     `json:"price_anomalies"`
	VendorDominance int     `json:"vendor_dominance"`
	LowCompetition  int     `json:"low_competition"`
	FlaggedTenders  int     `json:"flagged_tenders"`
}
