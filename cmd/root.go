package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facture/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "facture",
	Short: "Facture - OCR arbitration and structuring for scanned invoices",
	Long: `Facture turns raw OCR output from scanned invoices into structured,
normalized JSON records.

Each document is recognized twice - once on the untouched scan and once
on an enhanced variant - and an explicit scoring function arbitrates
between the two. The winning result is mined for the total amount,
normalized, and grouped into visual blocks for downstream reporting.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Facture CLI executed")

		fmt.Println("Welcome to Facture!")
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
