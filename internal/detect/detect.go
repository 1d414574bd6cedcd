// Package detect implements the rule-based statistical observation
// detector and the flag-mode analysis used for uploaded datasets.
//
// All output uses neutral, research-grade language. Observations are
// descriptive patterns, never accusations; every one carries an
// explicit does-not-imply caveat.
package detect

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/aggregate"
	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/report"
	"github.com/anviksha/anviksha/internal/stats"
)

// Config holds the detection thresholds. Tunable via configuration;
// the defaults mirror the published methodology.
type Config struct {
	// Observation mode.
	IQRMultiplier     float64 `yaml:"iqr_multiplier" mapstructure:"iqr_multiplier"`
	LowBidderMax      int     `yaml:"low_bidder_max" mapstructure:"low_bidder_max"`
	HighValueQuantile float64 `yaml:"high_value_quantile" mapstructure:"high_value_quantile"`
	YoYJumpRatio      float64 `yaml:"yoy_jump_ratio" mapstructure:"yoy_jump_ratio"`

	// Vendor concentration. Descriptive mode flags a vendor holding
	// more than DescriptiveSharePct of records; flagging mode requires
	// count > DominanceCountFactor × mean per-vendor count OR share >
	// DominanceSharePct. The two modes are intentionally distinct and
	// must not be merged.
	DescriptiveSharePct  float64 `yaml:"descriptive_share_pct" mapstructure:"descriptive_share_pct"`
	DominanceSharePct    float64 `yaml:"dominance_share_pct" mapstructure:"dominance_share_pct"`
	DominanceCountFactor float64 `yaml:"dominance_count_factor" mapstructure:"dominance_count_factor"`

	// Flag mode.
	ZThreshold float64 `yaml:"z_threshold" mapstructure:"z_threshold"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		IQRMultiplier:        1.5,
		LowBidderMax:         3,
		HighValueQuantile:    0.75,
		YoYJumpRatio:         1.5,
		DescriptiveSharePct:  20,
		DominanceSharePct:    30,
		DominanceCountFactor: 2,
		ZThreshold:           2.5,
	}
}

// Validate checks threshold sanity.
func (c Config) Validate() error {
	if c.IQRMultiplier <= 0 {
		return eris.New("detect: iqr_multiplier must be positive")
	}
	if c.HighValueQuantile <= 0 || c.HighValueQuantile >= 1 {
		return eris.New("detect: high_value_quantile must be in (0, 1)")
	}
	if c.YoYJumpRatio <= 1 {
		return eris.New("detect: yoy_jump_ratio must exceed 1")
	}
	if c.ZThreshold <= 0 {
		return eris.New("detect: z_threshold must be positive")
	}
	return nil
}

// Back-fill defaults so no observation is ever emitted with a blank
// confidence, rationale, or caveat.
const (
	defaultConfidenceReason = "Descriptive statistical rule (percentile/IQR) applied."
	defaultDoesNotImply     = "Irregularity or wrongdoing. Patterns are descriptive and may reflect scope or market factors."
)

// Detector runs the observation rules over normalized records.
type Detector struct {
	cfg Config
}

// New creates a Detector with the given thresholds.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// rule is one independent detection pass. Rules never mutate their
// input; each derives its own observation records.
type rule struct {
	name string
	run  func([]model.Tender) ([]model.Observation, error)
}

// Detect applies all observation rules to the records. A failure in
// one rule is logged and skipped; the remaining rules still run, so
// the pass always returns whatever observations succeeded. Results are
// independent of input order.
func (d *Detector) Detect(records []model.Tender) []model.Observation {
	if len(records) == 0 {
		return []model.Observation{}
	}

	rules := []rule{
		{"price_outlier", d.priceOutliers},
		{"low_competition", d.lowCompetition},
		{"vendor_concentration", d.vendorConcentration},
		{"year_over_year", d.yearOverYear},
	}

	var observations []model.Observation
	for _, r := range rules {
		obs, err := r.run(records)
		if err != nil {
			zap.L().Warn("detect: rule failed, continuing with remaining rules",
				zap.String("rule", r.name),
				zap.Error(err),
			)
			continue
		}
		observations = append(observations, obs...)
	}

	for i := range observations {
		backfill(&observations[i])
	}
	if observations == nil {
		observations = []model.Observation{}
	}
	return observations
}

func backfill(o *model.Observation) {
	if o.Confidence == "" {
		o.Confidence = model.ConfidenceMedium
	}
	if o.ConfidenceReason == "" {
		o.ConfidenceReason = defaultConfidenceReason
	}
	if o.DoesNotImply == "" {
		o.DoesNotImply = defaultDoesNotImply
	}
}

// priceOutliers flags records whose adjusted value exceeds
// Q3 + IQRMultiplier×IQR. Strictly greater: a value sitting exactly on
// the threshold is not an outlier.
func (d *Detector) priceOutliers(records []model.Tender) ([]model.Observation, error) {
	values := aggregate.AdjustedValues(records)
	if len(values) == 0 {
		return nil, eris.New("detect: no valid adjusted values")
	}

	q1 := stats.Quantile(values, 0.25)
	q3 := stats.Quantile(values, 0.75)
	iqr := q3 - q1
	threshold := q3 + d.cfg.IQRMultiplier*iqr
	median := stats.Median(values)

	var obs []model.Observation
	for _, t := range records {
		if !t.Valid() || t.AdjustedRs <= threshold {
			continue
		}
		ratio := 1.0
		if median > 0 {
			ratio = t.AdjustedRs / median
		}
		percentile := stats.PercentileOf(values, t.AdjustedRs)

		obs = append(obs, model.Observation{
			Kind:    model.KindPriceOutlier,
			Subject: t.ID,
			Title:   "Statistical Pattern: Above-Median Contract Value",
			Description: fmt.Sprintf(
				"Tender %s has an inflation-adjusted value of %s, which is %.1f× the median value (%s). "+
					"This places it in the %.0fth percentile of contract values.",
				t.ID, report.FormatCrore(t.AdjustedRs), ratio, report.FormatCrore(median), percentile),
			Confidence:       model.ConfidenceHigh,
			ConfidenceReason: "Statistical deviation detected via IQR method (>Q3 + 1.5×IQR)",
			DoesNotImply:     "Irregularity, wrongdoing, or cost overrun. May reflect project complexity, scope, or market conditions.",
			ValueRs:          t.AdjustedRs,
			Year:             t.AwardYear,
		})
	}
	return obs, nil
}

// lowCompetition flags records with few bidders and top-quartile value.
func (d *Detector) lowCompetition(records []model.Tender) ([]model.Observation, error) {
	values := aggregate.AdjustedValues(records)
	if len(values) == 0 {
		return nil, eris.New("detect: no valid adjusted values")
	}

	highValueThreshold := stats.Quantile(values, d.cfg.HighValueQuantile)
	medianBidders := aggregate.MedianBidders(records)

	bidderCounts := make([]float64, 0, len(records))
	for _, t := range records {
		bidderCounts = append(bidderCounts, float64(t.Bidders))
	}

	var obs []model.Observation
	for _, t := range records {
		// Bidders == 0 means unknown, not zero competition.
		if !t.Valid() || t.Bidders == 0 {
			continue
		}
		if t.Bidders > d.cfg.LowBidderMax || t.AdjustedRs <= highValueThreshold {
			continue
		}
		bidderPercentile := stats.PercentileOf(bidderCounts, float64(t.Bidders))

		obs = append(obs, model.Observation{
			Kind:    model.KindLowCompetition,
			Subject: t.ID,
			Title:   "Observable Pattern: Limited Bidder Participation",
			Description: fmt.Sprintf(
				"Tender %s received %d bidder(s) (compared to a median of %.0f bidders, placing it in the "+
					"%.0fth percentile of bidder counts). The contract value of %s is in the top quartile. "+
					"Limited bidding may reflect project-specific constraints or market factors.",
				t.ID, t.Bidders, medianBidders, bidderPercentile, report.FormatCrore(t.AdjustedRs)),
			Confidence:       model.ConfidenceMedium,
			ConfidenceReason: "Rule-based detection: bidders ≤3 AND value ≥75th percentile",
			DoesNotImply:     "Restricted bidding or improper procurement. May indicate specialized requirements or limited vendor availability.",
			ValueRs:          t.AdjustedRs,
			Year:             t.AwardYear,
			Bidders:          t.Bidders,
		})
	}
	return obs, nil
}

// vendorConcentration applies the descriptive concentration test: a
// vendor holding more than DescriptiveSharePct of the filtered
// records. The stricter flagging-mode dominance test lives in flag
// mode; the two are deliberately separate profiles.
func (d *Detector) vendorConcentration(records []model.Tender) ([]model.Observation, error) {
	vendors := aggregate.VendorStats(records)
	if len(vendors) == 0 {
		return nil, eris.New("detect: no vendor data")
	}

	var obs []model.Observation
	for _, vs := range vendors {
		if vs.CountShare <= d.cfg.DescriptiveSharePct {
			continue
		}
		obs = append(obs, model.Observation{
			Kind:    model.KindVendorConcentration,
			Subject: vs.Vendor,
			Title:   "Statistical Pattern: Vendor Contract Concentration",
			Description: fmt.Sprintf(
				"%s holds %d of %d contracts (%.1f%% of records, %.1f%% of adjusted value) in the current view. "+
					"Concentration may reflect specialization, regional presence, or limited vendor availability.",
				vs.Vendor, vs.ContractCount, len(records), vs.CountShare, vs.SharePercent),
			Confidence:       model.ConfidenceMedium,
			ConfidenceReason: "Share exceeds configured concentration threshold",
			DoesNotImply:     "Favoritism or improper award. A small market can concentrate naturally.",
			ValueRs:          vs.TotalValueRs,
		})
	}
	return obs, nil
}

// yearOverYear flags sequential jumps for the same vendor+district:
// mean adjusted value per (vendor, district, year), sorted by year,
// where a later year exceeds YoYJumpRatio times the previous one. This
// rule is inherently order-sensitive, so it sorts by (vendor,
// district, year) before pairing to stay deterministic.
func (d *Detector) yearOverYear(records []model.Tender) ([]model.Observation, error) {
	type yearPoint struct {
		vendor   string
		district string
		year     int
		sum      float64
		count    int
	}

	points := make(map[string]*yearPoint)
	for _, t := range records {
		if !t.Valid() {
			continue
		}
		k := fmt.Sprintf("%s\x00%s\x00%d", t.Vendor, t.District, t.AwardYear)
		p, ok := points[k]
		if !ok {
			p = &yearPoint{vendor: t.Vendor, district: t.District, year: t.AwardYear}
			points[k] = p
		}
		p.sum += t.AdjustedRs
		p.count++
	}
	if len(points) == 0 {
		return nil, eris.New("detect: no valid records for year pairing")
	}

	series := make([]*yearPoint, 0, len(points))
	for _, p := range points {
		series = append(series, p)
	}
	sort.Slice(series, func(i, j int) bool {
		a, b := series[i], series[j]
		if a.vendor != b.vendor {
			return a.vendor < b.vendor
		}
		if a.district != b.district {
			return a.district < b.district
		}
		return a.year < b.year
	})

	var obs []model.Observation
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		if prev.vendor != cur.vendor || prev.district != cur.district {
			continue
		}
		prevMean := prev.sum / float64(prev.count)
		curMean := cur.sum / float64(cur.count)
		if curMean <= prevMean*d.cfg.YoYJumpRatio {
			continue
		}
		increasePct := (curMean - prevMean) / prevMean * 100

		obs = append(obs, model.Observation{
			Kind:    model.KindYearOverYear,
			Subject: fmt.Sprintf("%s - %s", cur.vendor, cur.district),
			Title:   "Statistical Observation: Year-over-Year Value Change",
			Description: fmt.Sprintf(
				"Contracts awarded to %s in %s increased by %.0f%% from %d to %d (%s → %s). "+
					"This may reflect changes in project scope, complexity, inflation, or material costs.",
				cur.vendor, cur.district, increasePct, prev.year, cur.year,
				report.FormatCrore(prevMean), report.FormatCrore(curMean)),
			Confidence:       model.ConfidenceLow,
			ConfidenceReason: "Observed change without causal context; requires domain knowledge to interpret.",
			DoesNotImply:     "Improper pricing or escalation. Increases are common due to inflation and project variation.",
			ValueRs:          curMean,
			Year:             cur.year,
		})
	}
	return obs, nil
}
