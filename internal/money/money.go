// Package money formats amounts for display. Rounding happens only here,
// at the presentation boundary; the pricing engine works on raw values.
package money

import "github.com/shopspring/decimal"

// Format renders an amount with exactly two decimal places.
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatWithCurrency renders an amount followed by its currency code.
func FormatWithCurrency(amount float64, currency string) string {
	if currency == "" {
		return Format(amount)
	}
	return Format(amount) + " " + currency
}
