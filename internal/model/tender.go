// Package model defines the data types shared across the analysis engine.
package model

// Tender represents one procurement record after ingestion cleaning.
type Tender struct {
	ID         string  `json:"id"`
	District   string  `json:"district"`
	Department string  `json:"department"`
	RoadType   string  `json:"road_type,omitempty"`
	Vendor     string  `json:"vendor"`
	AwardYear  int     `json:"award_year"`
	ValueRs    float64 `json:"value_rs"`             // nominal value in rupees
	LengthKm   float64 `json:"length_km,omitempty"`  // 0 means not applicable
	Bidders    int     `json:"bidders,omitempty"`    // 0 means unknown
	AdjustedRs float64 `json:"adjusted_rs,omitempty"` // base-year value, set by the normalizer
}

// Valid reports whether the record can participate in ratio-based
// statistics: a positive value and a plausible award year.
func (t Tender) Valid() bool {
	return t.ValueRs > 0 && t.AwardYear > 2000
}

// CostPerKm returns the adjusted cost per kilometre, or 0 when the
// record carries no length data.
func (t Tender) CostPerKm() float64 {
	if t.LengthKm <= 0 {
		return 0
	}
	return t.AdjustedRs / t.LengthKm
}

// Filter selects a subset of records for analysis. Empty or "All"
// fields match everything.
type Filter struct {
	District   string `json:"district,omitempty"`
	Department string `json:"department,omitempty"`
}

// Matches reports whether a record passes the filter.
func (f Filter) Matches(t Tender) bool {
	if f.District != "" && f.District != "All" && t.District != f.District {
		return false
	}
	if f.Department != "" && f.Department != "All" && t.Department != f.Department {
		return false
	}
	return true
}

// Apply returns the records matching the filter. The input slice is
// never modified.
func (f Filter) Apply(records []Tender) []Tender {
	out := make([]Tender, 0, len(records))
	for _, t := range records {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
