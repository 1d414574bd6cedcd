package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/ingest"
	"github.com/anviksha/anviksha/internal/store"
)

var (
	importCSV  string
	importName string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a procurement CSV into the dataset store",
	Long: `Parses and cleans a CSV (heuristic column detection, currency
stripping, vendor-name standardization) and saves the records as a
named dataset for later analysis.

Example:
  anviksha import --csv tenders.csv --name "WB road tenders 2019-2024"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := ingest.ParseCSVFile(importCSV)
		if err != nil {
			return eris.Wrap(err, "import: parse csv")
		}
		if len(records) == 0 {
			return eris.New("import: no usable records in csv")
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		name := importName
		if name == "" {
			name = importCSV
		}
		ds, err := st.SaveDataset(ctx, name, records)
		if err != nil {
			return err
		}

		zap.L().Info("dataset imported",
			zap.String("id", ds.ID),
			zap.String("name", ds.Name),
			zap.Int("records", ds.RecordCount),
		)
		fmt.Printf("Imported %d records as dataset %s\n", ds.RecordCount, ds.ID)
		return nil
	},
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importCSV, "csv", "", "path to the CSV to import (required)")
	f.StringVar(&importName, "name", "", "dataset name (default: csv path)")
	_ = importCmd.MarkFlagRequired("csv")

	rootCmd.AddCommand(importCmd)
}
