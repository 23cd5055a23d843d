package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expertlane/ratecard/internal/pricing"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a pricing configuration file",
	Long: `Load a pricing configuration file and report whether it is usable:
all catalog entries well formed and the commission percentages summing
to 100.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := pricing.LoadFile(pricingFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d tiers, %d urgency options, %d complexity options, split %v/%v/%v\n",
		pricingFile,
		len(cfg.Tiers), len(cfg.Urgencies), len(cfg.Complexities),
		cfg.Commission.ExecutorPct, cfg.Commission.ReviewerPct, cfg.Commission.PlatformPct)
	return nil
}
