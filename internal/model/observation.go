package model

// ObservationKind enumerates the detection rules that can fire.
type ObservationKind string

const (
	KindPriceOutlier        ObservationKind = "price_outlier"
	KindLowCompetition      ObservationKind = "low_competition"
	KindVendorConcentration ObservationKind = "vendor_concentration"
	KindYearOverYear        ObservationKind = "year_over_year"
)

// Confidence is a coarse indicator of how strong the statistical basis
// for an observation is. It is not a probability.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Observation is one detector finding. Descriptions embed concrete
// numbers and stay strictly neutral; every observation carries an
// explicit does-not-imply caveat.
type Observation struct {
	Kind             ObservationKind `json:"kind"`
	Subject          string          `json:"subject"` // tender id or "vendor - district"
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Confidence       Confidence      `json:"confidence"`
	ConfidenceReason string          `json:"confidence_reason"`
	DoesNotImply     string          `json:"does_not_imply"`
	ValueRs          float64         `json:"value_rs,omitempty"`
	Year             int             `json:"year,omitempty"`
	Bidders          int             `json:"bidders,omitempty"`
}

// CountByKind tallies observations per rule.
func CountByKind(obs []Observation) map[ObservationKind]int {
	counts := make(map[ObservationKind]int, 4)
	for _, o := range obs {
		counts[o.Kind]++
	}
	return counts
}
