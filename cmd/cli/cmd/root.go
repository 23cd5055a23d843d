// Package cmd provides the CLI commands for ratecard.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pricingFile string

var rootCmd = &cobra.Command{
	Use:   "ratecard",
	Short: "Price expert-network jobs from a pricing configuration file",
	Long: `ratecard calculates job prices and commission splits from a JSON
pricing configuration.

Examples:
  ratecard quote --pricing pricing.json --tier standard --urgency 48h --complexity medium --pages 5
  ratecard quote --pricing pricing.json --tier premium --urgency 24h --complexity hard --words 1200
  ratecard validate --pricing pricing.json`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&pricingFile, "pricing", "p", "pricing.json", "pricing configuration file")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ratecard version 0.1.0")
	},
}
