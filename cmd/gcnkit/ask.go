package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func askCmd() *cobra.Command {
	var showRows bool

	cmd := &cobra.Command{
		Use:     "ask [question]",
		Aliases: []string{"query"},
		Short:   "Answer a natural-language question from the catalog",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			answer, err := eng.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			dim := color.New(color.Faint)
			if answer.Query != "" {
				dim.Println("Query")
				fmt.Println(answer.Query)
				fmt.Println()
			}
			if showRows && len(answer.Rows) > 0 {
				dim.Println("Rows")
				out, err := json.MarshalIndent(answer.Rows, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding rows: %w", err)
				}
				fmt.Println(string(out))
				fmt.Println()
			}
			dim.Println("Answer")
			fmt.Println(answer.Text)
			if answer.Retries > 0 {
				dim.Printf("(after %d correction attempt(s))\n", answer.Retries)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRows, "rows", false, "also print the raw result rows")
	return cmd
}
