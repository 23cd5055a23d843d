package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expertlane/ratecard/internal/money"
	"github.com/expertlane/ratecard/internal/pricing"
)

var (
	quoteTier       string
	quoteUrgency    string
	quoteComplexity string
	quotePages      float64
	quoteWords      float64
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate a price breakdown for a job",
	Long: `Calculate the price and commission split for a single job.

Exactly one of --pages or --words selects how the job is sized.

Examples:
  ratecard quote --pricing pricing.json --tier standard --urgency 48h --complexity medium --pages 5
  ratecard quote --pricing pricing.json --tier premium --urgency 24h --complexity hard --words 1200`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteTier, "tier", "", "pricing tier id")
	quoteCmd.Flags().StringVar(&quoteUrgency, "urgency", "", "urgency option id")
	quoteCmd.Flags().StringVar(&quoteComplexity, "complexity", "", "complexity option id")
	quoteCmd.Flags().Float64Var(&quotePages, "pages", 0, "job size in pages")
	quoteCmd.Flags().Float64Var(&quoteWords, "words", 0, "job size in words")
}

func runQuote(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("pages") && cmd.Flags().Changed("words") {
		return errors.New("use either --pages or --words, not both")
	}

	cfg, err := pricing.LoadFile(pricingFile)
	if err != nil {
		return err
	}

	params := pricing.JobParameters{
		TierID:       quoteTier,
		UrgencyID:    quoteUrgency,
		ComplexityID: quoteComplexity,
	}
	switch {
	case cmd.Flags().Changed("pages"):
		params.Size = pricing.Pages(quotePages)
	case cmd.Flags().Changed("words"):
		params.Size = pricing.Words(quoteWords)
	}

	breakdown, err := pricing.Calculate(cfg, params)
	if errors.Is(err, pricing.ErrNotComputable) {
		fmt.Fprintf(cmd.OutOrStdout(), "Quote not computable: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Base price:          %s\n", money.FormatWithCurrency(breakdown.BasePrice, cfg.Currency))
	fmt.Fprintf(out, "Urgency factor:      x%v\n", breakdown.UrgencyFactor)
	fmt.Fprintf(out, "Complexity factor:   x%v\n", breakdown.ComplexityFactor)
	fmt.Fprintf(out, "Total price:         %s\n", money.FormatWithCurrency(breakdown.TotalPrice, cfg.Currency))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Executor payout:     %s\n", money.FormatWithCurrency(breakdown.ExecutorPayout, cfg.Currency))
	fmt.Fprintf(out, "Reviewer commission: %s\n", money.FormatWithCurrency(breakdown.ReviewerCommission, cfg.Currency))
	fmt.Fprintf(out, "Platform fee:        %s\n", money.FormatWithCurrency(breakdown.PlatformFee, cfg.Currency))
	return nil
}
