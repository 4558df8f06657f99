package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	var (
		outDir     string
		quantities bool
	)

	cmd := &cobra.Command{
		Use:     "extract [path]",
		Aliases: []string{"extractor"},
		Short:   "Extract structured records from circular text",
		Long: `Extract runs the label-driven pipeline over one circular text file, or
over every .txt file in a directory when --out is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.ExtractQuantities = quantities
			eng, err := newEngineFrom(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("inspecting input path: %w", err)
			}

			if info.IsDir() {
				if outDir == "" {
					return fmt.Errorf("a directory input requires --out")
				}
				report, err := eng.ExtractPath(cmd.Context(), args[0], outDir)
				if err != nil {
					return err
				}
				printReport("Extracted", report.Processed, report.Skipped)
				return nil
			}

			result, err := eng.ExtractFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			dim := color.New(color.Faint)
			dim.Println("Circular")
			fmt.Println(result.RawText)
			fmt.Println()
			dim.Println("Extracted Results")
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for batch extraction")
	cmd.Flags().BoolVar(&quantities, "quantities", false, "also extract physical-quantity sentences")
	return cmd
}

func printReport(verb string, processed int, skipped []string) {
	fmt.Printf("%s %d record(s)\n", verb, processed)
	if len(skipped) > 0 {
		warn := color.New(color.FgYellow)
		warn.Printf("Skipped %d file(s):\n", len(skipped))
		for _, name := range skipped {
			fmt.Printf("  %s\n", name)
		}
	}
}
