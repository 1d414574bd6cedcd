package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/pipeline"
	"github.com/anviksha/anviksha/internal/report"
)

var (
	analyzeCSV         string
	analyzeDataset     string
	analyzeSample      bool
	analyzeDistrict    string
	analyzeDepartment  string
	analyzeBaseYear    int
	analyzePerDistrict bool
	analyzeFormat      string
	analyzeOutput      string
	analyzeXLSX        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full analysis pass over a dataset",
	Long: `Normalizes tender values to base-year rupees, aggregates spending by
district/year/vendor, detects statistical observations, and composes a
narrative summary.

Examples:
  # Analyze the embedded sample dataset
  anviksha analyze --sample

  # Analyze a CSV, filtered to one district
  anviksha analyze --csv tenders.csv --district Howrah

  # Analyze a stored dataset, one pass per district, JSON to a file
  anviksha analyze --dataset <id> --per-district --format json --output results.json

  # Export an XLSX workbook
  anviksha analyze --sample --xlsx report.xlsx`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeCSV, "csv", "", "path to a procurement CSV")
	f.StringVar(&analyzeDataset, "dataset", "", "stored dataset id (see: anviksha datasets)")
	f.BoolVar(&analyzeSample, "sample", false, "use the embedded West Bengal sample dataset")
	f.StringVar(&analyzeDistrict, "district", "", "filter to one district")
	f.StringVar(&analyzeDepartment, "department", "", "filter to one department")
	f.IntVar(&analyzeBaseYear, "base-year", 0, "normalization base year (overrides config)")
	f.BoolVar(&analyzePerDistrict, "per-district", false, "run one pass per district in parallel")
	f.StringVar(&analyzeFormat, "format", "table", "output format: table or json")
	f.StringVar(&analyzeOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&analyzeXLSX, "xlsx", "", "also export an XLSX workbook to this path")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	records, err := loadRecords(ctx, analyzeCSV, analyzeDataset, analyzeSample)
	if err != nil {
		return eris.Wrap(err, "analyze: load records")
	}

	p, err := newPipeline(analyzeBaseYear)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "analyze"))
	log.Info("starting analysis",
		zap.Int("records", len(records)),
		zap.Int("base_year", p.BaseYear()),
	)

	var results []*model.AnalysisResult
	if analyzePerDistrict {
		results, err = runPerDistrict(p, records)
		if err != nil {
			return err
		}
	} else {
		filter := model.Filter{District: analyzeDistrict, Department: analyzeDepartment}
		results = []*model.AnalysisResult{p.Run(records, filter)}
	}

	out := os.Stdout
	if analyzeOutput != "" {
		f, err := os.Create(analyzeOutput)
		if err != nil {
			return eris.Wrapf(err, "analyze: create %s", analyzeOutput)
		}
		defer f.Close()
		out = f
	}

	switch analyzeFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return eris.Wrap(err, "analyze: encode json")
		}
	case "table":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "────────────────────────────────────────")
				fmt.Fprintln(out)
			}
			if analyzePerDistrict {
				fmt.Fprintf(out, "District: %s\n\n", r.Filter.District)
			}
			if err := report.WriteText(out, r); err != nil {
				return err
			}
		}
	default:
		return eris.Errorf("analyze: unknown format %q", analyzeFormat)
	}

	if analyzeXLSX != "" {
		// XLSX export covers the first (or only) result.
		if err := report.WriteXLSX(analyzeXLSX, results[0]); err != nil {
			return err
		}
		log.Info("xlsx exported", zap.String("path", analyzeXLSX))
	}

	return nil
}

// runPerDistrict runs one pass per district concurrently. Passes share
// only the read-only records and pipeline, so no locking is needed
// beyond collecting results.
func runPerDistrict(p *pipeline.Pipeline, records []model.Tender) ([]*model.AnalysisResult, error) {
	districts := pipeline.Districts(records)

	var mu sync.Mutex
	results := make(map[string]*model.AnalysisResult, len(districts))

	var g errgroup.Group
	g.SetLimit(4)
	for _, district := range districts {
		g.Go(func() error {
			r := p.Run(records, model.Filter{District: district})
			mu.Lock()
			results[district] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "analyze: per-district passes")
	}

	ordered := make([]*model.AnalysisResult, 0, len(districts))
	for _, district := range districts {
		ordered = append(ordered, results[district])
	}
	return ordered, nil
}
