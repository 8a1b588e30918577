package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"vatreport/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "vatreport",
	Short: "Printful VAT report generator",
	Long: `vatreport fetches Printful orders for a date range and writes an
accounting report with net amount, applied VAT rate and dispatch country
for every order.

Reports are written to the reports directory (default ./Accounting_Reports)
as CSV or XLSX and can optionally be mirrored into a Google Sheet.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("vatreport executed")

		fmt.Println("Welcome to vatreport!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
