package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcnml/gcnkit/graphdb"
)

func purgeCmd() *cobra.Command {
	var (
		batchID string
		mine    bool
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove ingested nodes and edges from the graph",
		Long: `Purge deletes graph rows by provenance: --batch removes one ingestion
batch, --mine removes everything this tool ever wrote.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (batchID != "") == mine {
				return fmt.Errorf("exactly one of --batch or --mine is required")
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			var n int64
			if batchID != "" {
				n, err = eng.Store().PurgeBatch(cmd.Context(), batchID)
			} else {
				n, err = eng.Store().PurgeCreated(cmd.Context(), graphdb.CreatedBy)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Purged %d row(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "purge a single ingestion batch by ID")
	cmd.Flags().BoolVar(&mine, "mine", false, "purge every row written by gcnkit")
	return cmd
}
