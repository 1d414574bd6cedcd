package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/anviksha/anviksha/internal/store"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List imported datasets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		datasets, err := st.ListDatasets(ctx)
		if err != nil {
			return err
		}
		if len(datasets) == 0 {
			fmt.Println("No datasets imported yet. Use: anviksha import --csv <path>")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tRECORDS\tCREATED")
		for _, ds := range datasets {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
				ds.ID, ds.Name, ds.RecordCount, ds.CreatedAt.Format("2006-01-02 15:04"))
		}
		return eris.Wrap(tw.Flush(), "datasets: flush table")
	},
}

var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an imported dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteDataset(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted dataset %s\n", args[0])
		return nil
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsDeleteCmd)
	rootCmd.AddCommand(datasetsCmd)
}
