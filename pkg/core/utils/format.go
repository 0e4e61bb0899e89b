package utils

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Money formats whole dollars with thousands separators: 1234.5 -> "$1,235".
func Money(x float64) string {
	return "$" + humanize.FormatFloat("#,###.", x)
}

// Money2 formats dollars and cents: 8 -> "$8.00".
func Money2(x float64) string {
	return "$" + humanize.FormatFloat("#,###.##", x)
}

// Pct formats a fraction as a percentage with two decimals: 0.9 -> "90.00%".
func Pct(x float64) string {
	return fmt.Sprintf("%.2f%%", x*100)
}

// Count formats a quantity (lbs, people) rounded with thousands separators.
func Count(x float64) string {
	return humanize.FormatFloat("#,###.", x)
}

// Months formats a payback period; an undefined (infinite or NaN) payback renders as "∞".
func Months(x float64) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return "∞"
	}
	return fmt.Sprintf("%.1f mo", x)
}
