package model

// SummaryStats is the fixed-shape aggregate for a filtered view.
// All monetary figures are inflation-adjusted rupees.
type SummaryStats struct {
	TotalSpendingRs float64 `json:"total_spending_rs"`
	TotalProjects   int     `json:"total_projects"`
	AvgCostPerKmRs  float64 `json:"avg_cost_per_km_rs"` // 0 when no length data
	TimeRange       string  `json:"time_range"`         // "2019-2024", "2023", or "N/A"
	DistrictsCount  int     `json:"districts_count"`
	VendorsCount    int     `json:"vendors_count"`
}

// GroupRow is one row of a grouped-aggregation table.
type GroupRow struct {
	Key             string  `json:"key"`
	TotalSpendingRs float64 `json:"total_spending_rs"`
	ProjectCount    int     `json:"project_count"`
	MeanSpendingRs  float64 `json:"mean_spending_rs"`
	TotalLengthKm   float64 `json:"total_length_km,omitempty"`
	CostPerKmRs     float64 `json:"cost_per_km_rs,omitempty"` // 0 when group length is 0
}

// VendorStats holds per-vendor aggregates used by the concentration
// rule and the vendor table.
type VendorStats struct {
	Vendor        string  `json:"vendor"`
	TotalValueRs  float64 `json:"total_value_rs"`
	ContractCount int     `json:"contract_count"`
	AvgValueRs    float64 `json:"avg_value_rs"`
	AvgBidders    float64 `json:"avg_bidders"`
	SharePercent  float64 `json:"share_percent"` // of total adjusted value
	CountShare    float64 `json:"count_share"`   // of record count, 0-100
}

// AnalysisResult is the full output of one engine pass.
type AnalysisResult struct {
	Filter       Filter        `json:"filter"`
	Summary      SummaryStats  `json:"summary"`
	ByDistrict   []GroupRow    `json:"by_district"`
	ByDepartment []GroupRow    `json:"by_department"`
	ByYear       []GroupRow    `json:"by_year"`
	Vendors      []VendorStats `json:"vendors"`
	Observations []Observation `json:"observations"`
	Narrative    string        `json:"narrative"`
}
