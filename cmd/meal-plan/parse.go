// cmd/meal-plan/parse.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mcp-meal-plan/internal/parser"
)

func newParseCmd() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a meal plan and print it as JSON",
		Long: `Parse a freeform meal plan and print the structured result as JSON.

If no file is provided, the plan is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			if len(args) == 0 {
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				source, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			result, err := parser.ParseWithOptions(string(source), parser.Options{Day: day})
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().IntVar(&day, "day", 1, "Day number to attach to the result")

	return cmd
}
