// Package pricing derives effective prices and formats money amounts.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// EffectivePrice applies a percentage discount to a listed amount.
// Non-numeric inputs (NaN, ±Inf) are treated as 0.
func EffectivePrice(listedAmount, discountPercent float64) float64 {
	listedAmount = finite(listedAmount)
	discountPercent = finite(discountPercent)

	if discountPercent > 0 {
		return listedAmount - listedAmount*discountPercent/100
	}
	return listedAmount
}

// Fixed2 renders amount with exactly two decimals, e.g. "3500.00".
func Fixed2(amount float64) string {
	return decimal.NewFromFloat(finite(amount)).StringFixed(2)
}

// Display renders amount for shoppers: "₹12,000", "₹1,234.5".
func Display(amount float64) string {
	d := decimal.NewFromFloat(finite(amount)).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole, frac, _ := strings.Cut(d.String(), ".")
	out := sign + currencySymbol + group(whole)
	if frac != "" {
		out += "." + frac
	}
	return out
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
