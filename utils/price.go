package utils

import "fmt"

// FinalPrice computes the discounted display price. The result never goes
// below zero: a discount over 100% clamps to exactly 0. Out-of-range percent
// values are accepted as stored and only clamped here, at display time.
func FinalPrice(base, percent float64) float64 {
	final := base * (1 - percent/100)
	if final < 0 {
		return 0
	}
	return final
}

// FormatUSD renders a price with a fixed two-decimal dollar format.
func FormatUSD(n float64) string {
	return fmt.Sprintf("$%.2f", n)
}
