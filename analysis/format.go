package analysis

import (
	"fmt"
	"strconv"
)

// FormatNumber renders a count compactly (1.2K, 3.4M).
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// FormatPercent renders a fraction as a percentage with one decimal.
func FormatPercent(n float64) string {
	return fmt.Sprintf("%.1f%%", n*100)
}

// FormatCurrency renders an amount in PLN, compacted like FormatNumber.
func FormatCurrency(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM PLN", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK PLN", n/1_000)
	default:
		return fmt.Sprintf("%.0f PLN", n)
	}
}

// FormatPosition renders an average position with one decimal.
func FormatPosition(n float64) string {
	return fmt.Sprintf("%.1f", n)
}
