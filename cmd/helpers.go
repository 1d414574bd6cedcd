package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/cpi"
	"github.com/anviksha/anviksha/internal/ingest"
	"github.com/anviksha/anviksha/internal/model"
	"github.com/anviksha/anviksha/internal/pipeline"
	"github.com/anviksha/anviksha/internal/store"
)

// newPipeline builds the analysis pipeline from config, honoring an
// optional base-year override and index-file override.
func newPipeline(baseYearOverride int) (*pipeline.Pipeline, error) {
	index := cpi.Default()
	baseYear := cfg.Index.BaseYear

	if cfg.Index.File != "" {
		t, fileBaseYear, err := cpi.LoadTable(cfg.Index.File)
		if err != nil {
			return nil, err
		}
		index = t
		if fileBaseYear != 0 {
			baseYear = fileBaseYear
		}
		zap.L().Info("using CPI index override",
			zap.String("file", cfg.Index.File),
			zap.Int("base_year", baseYear),
		)
	}
	if baseYearOverride != 0 {
		baseYear = baseYearOverride
	}

	return pipeline.New(index, baseYear, cfg.Detect)
}

// loadRecords resolves the dataset source for a command: an explicit
// CSV path, a stored dataset id, or the embedded sample.
func loadRecords(ctx context.Context, csvPath, datasetID string, useSample bool) ([]model.Tender, error) {
	switch {
	case csvPath != "":
		return ingest.ParseCSVFile(csvPath)
	case datasetID != "":
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		_, records, err := st.GetDataset(ctx, datasetID)
		return records, err
	case useSample:
		return ingest.SampleData()
	default:
		return nil, eris.New("no dataset specified: use --csv, --dataset, or --sample")
	}
}
