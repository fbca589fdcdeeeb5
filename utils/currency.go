package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as dollars with thousands separators.
// Example: 15000.5 -> "$15,000.50", -3.2 -> "-$3.20"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	formatted := amount.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + "$" + strings.Join(groups, ",") + "." + decimalPart
}
