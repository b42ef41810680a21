package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatUSD renders an amount as US-dollar currency with thousands
// separators, e.g. 12345.5 -> "$12,345.50". All dashboard-facing currency
// strings go through here so insights and reports agree on formatting.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a ratio in [0,1] as a percentage with one decimal
// place, e.g. 0.2 -> "20.0%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
