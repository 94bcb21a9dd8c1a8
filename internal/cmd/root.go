package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sheetstock",
	Short: "Sheetstock - inventory and delivery API over spreadsheets",
	Long: `Sheetstock serves product, stock and flavor lookups from the shop's
products spreadsheet and records delivery orders in the deliveries
spreadsheet.

Run it as an HTTP server, or use the CLI commands to query the inventory
and prepare local workbooks for offline development.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
