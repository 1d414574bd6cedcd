package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/cpi"
	"github.com/anviksha/anviksha/internal/detect"
	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/report"
)

var (
	flagCSV         string
	flagDataset     string
	flagSample      bool
	flagDistrict    string
	flagDepartment  string
	flagBaseYear    int
	flagZThreshold  float64
	flagFormat      string
	flagOutput      string
	flagXLSX        string
	flagMethodology bool
)

var flagCmd = &cobra.Command{
	Use:   "flag",
	Short: "Run the flag-mode analysis profile over a dataset",
	Long: `Applies the upload-analysis profile: Z-score price anomalies, vendor
dominance (count > 2× mean per-vendor count or share > 30%), and low
competition relative to the median bidder count. A tender is flagged
when any sub-rule fires.

Flagged tenders are statistical anomalies that may warrant further
review; they do not indicate wrongdoing.

Examples:
  anviksha flag --csv uploaded.csv
  anviksha flag --sample --z-threshold 2.0 --format json
  anviksha flag --csv uploaded.csv --xlsx flagged.xlsx`,
	RunE: runFlag,
}

func init() {
	f := flagCmd.Flags()
	f.StringVar(&flagCSV, "csv", "", "path to a procurement CSV")
	f.StringVar(&flagDataset, "dataset", "", "stored dataset id")
	f.BoolVar(&flagSample, "sample", false, "use the embedded sample dataset")
	f.StringVar(&flagDistrict, "district", "", "filter to one district")
	f.StringVar(&flagDepartment, "department", "", "filter to one department")
	f.IntVar(&flagBaseYear, "base-year", 0, "normalization base year (overrides config)")
	f.Float64Var(&flagZThreshold, "z-threshold", 0, "Z-score threshold (overrides config, default 2.5)")
	f.StringVar(&flagFormat, "format", "table", "output format: table or json")
	f.StringVar(&flagOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&flagXLSX, "xlsx", "", "export flagged tenders to an XLSX workbook")
	f.BoolVar(&flagMethodology, "methodology", false, "print the methodology explanation and exit")

	rootCmd.AddCommand(flagCmd)
}

func runFlag(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if flagMethodology {
		baseYear := cfg.Index.BaseYear
		if flagBaseYear != 0 {
			baseYear = flagBaseYear
		}
		fmt.Println(detect.Methodology())
		fmt.Println()
		fmt.Println(cpi.Info(baseYear))
		return nil
	}

	records, err := loadRecords(ctx, flagCSV, flagDataset, flagSample)
	if err != nil {
		return eris.Wrap(err, "flag: load records")
	}

	if flagZThreshold > 0 {
		cfg.Detect.ZThreshold = flagZThreshold
	}

	p, err := newPipeline(flagBaseYear)
	if err != nil {
		return err
	}

	zap.L().Info("starting flag pass",
		zap.Int("records", len(records)),
		zap.Float64("z_threshold", cfg.Detect.ZThreshold),
	)

	rep := p.Flag(records, model.Filter{District: flagDistrict, Department: flagDepartment})

	out := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return eris.Wrapf(err, "flag: create %s", flagOutput)
		}
		defer f.Close()
		out = f
	}

	switch flagFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return eris.Wrap(err, "flag: encode json")
		}
	case "table":
		if err := report.WriteFlagText(out, rep); err != nil {
			return err
		}
	default:
		return eris.Errorf("flag: unknown format %q", flagFormat)
	}

	if flagXLSX != "" {
		if err := report.WriteFlagXLSX(flagXLSX, rep); err != nil {
			return err
		}
		zap.L().Info("xlsx exported", zap.String("path", flagXLSX))
	}

	return nil
}
