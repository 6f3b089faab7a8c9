// cmd/meal-plan/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"mcp-meal-plan/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "meal-plan",
		Short:        "Parse freeform meal plans into structured meals",
		Version:      server.Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
