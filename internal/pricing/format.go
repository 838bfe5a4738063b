package pricing

import "github.com/shopspring/decimal"

// FormatAmount renders a cart or order amount for display: "Rs " + 2 decimals.
// Rounding happens only here; calculations keep full precision.
func FormatAmount(amount decimal.Decimal) string {
	return "Rs " + amount.StringFixed(2)
}

// FormatFee renders a consultation fee for display: "Rs " + 0 decimals.
func FormatFee(amount decimal.Decimal) string {
	return "Rs " + amount.StringFixed(0)
}
