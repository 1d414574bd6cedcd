// Package pipeline orchestrates one engine pass: filter → normalize →
// aggregate → detect → compose. Every stage is a pure function over
// the caller's records; the pipeline holds only the immutable index
// table and thresholds, so independent passes may run concurrently.
package pipeline

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/aggregate"
	"github.com/anviksha/anviksha/internal/cpi"
	"github.com/anviksha/anviksha/internal/detect"
	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/narrative"
)

// Pipeline bundles the engine stages behind one entry point.
type Pipeline struct {
	index    *cpi.Table
	baseYear int
	detector *detect.Detector
}

// New builds a pipeline. A nil index selects the built-in CPI table.
func New(index *cpi.Table, baseYear int, detectCfg detect.Config) (*Pipeline, error) {
	if err := detectCfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "pipeline: detection config")
	}
	if index == nil {
		index = cpi.Default()
	}
	if baseYear == 0 {
		baseYear = cpi.DefaultBaseYear
	}
	return &Pipeline{
		index:    index,
		baseYear: baseYear,
		detector: detect.New(detectCfg),
	}, nil
}

// BaseYear reports the normalization target year.
func (p *Pipeline) BaseYear() int { return p.baseYear }

// Run performs a full observation-mode pass over the records under the
// given filter. The input slice is never mutated.
func (p *Pipeline) Run(records []model.Tender, filter model.Filter) *model.AnalysisResult {
	filtered := filter.Apply(records)
	normalized := cpi.Normalize(p.index, filtered, p.baseYear)

	summary := aggregate.Summary(normalized)
	observations := p.detector.Detect(normalized)

	result := &model.AnalysisResult{
		Filter:       filter,
		Summary:      summary,
		ByDistrict:   aggregate.ByDistrict(normalized),
		ByDepartment: aggregate.ByDepartment(normalized),
		ByYear:       aggregate.ByYear(normalized),
		Vendors:      aggregate.VendorStats(normalized),
		Observations: observations,
		Narrative:    narrative.Compose(summary, observations, filter),
	}

	zap.L().Info("pipeline: analysis pass complete",
		zap.String("district", filter.District),
		zap.String("department", filter.Department),
		zap.Int("records", len(filtered)),
		zap.Int("observations", len(observations)),
	)
	return result
}

// Flag performs a flag-mode pass (Z-score profile) over the records.
func (p *Pipeline) Flag(records []model.Tender, filter model.Filter) model.FlagReport {
	filtered := filter.Apply(records)
	normalized := cpi.Normalize(p.index, filtered, p.baseYear)
	return p.detector.Flag(normalized)
}

// Districts lists the distinct districts in the records, for building
// per-district views.
func Districts(records []model.Tender) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range records {
		if _, ok := seen[t.District]; !ok {
			seen[t.District] = struct{}{}
			out = append(out, t.District)
		}
	}
	sort.Strings(out)
	return out
}
