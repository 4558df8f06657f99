package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ingest [path]",
		Aliases: []string{"builder"},
		Short:   "Graft extraction records onto the graph",
		Long: `Ingest reads one .json extraction record, or every record in a
directory, and grafts them onto the graph under a fresh batch ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			report, err := eng.Ingest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printReport("Ingested", report.Processed, report.Skipped)
			fmt.Printf("Batch: %s\n", report.BatchID)
			return nil
		},
	}
}
