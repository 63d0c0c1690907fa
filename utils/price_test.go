package utils_test

import (
	"testing"

	"github.com/katanastore/backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, 80.0, utils.FinalPrice(100, 20))
	assert.Equal(t, 100.0, utils.FinalPrice(100, 0))
	// Over-100% discounts clamp to exactly zero, never negative.
	assert.Equal(t, 0.0, utils.FinalPrice(50, 150))
	assert.Equal(t, 0.0, utils.FinalPrice(100, 100))
}

func TestFinalPriceNeverNegative(t *testing.T) {
	bases := []float64{0, 0.01, 1, 99.99, 100000}
	percents := []float64{-50, 0, 10, 99, 100, 101, 500}
	for _, b := range bases {
		for _, p := range percents {
			assert.GreaterOrEqual(t, utils.FinalPrice(b, p), 0.0, "base=%v percent=%v", b, p)
		}
	}
}

func TestFinalPriceNegativePercentRaisesPrice(t *testing.T) {
	// Out-of-range percent values are stored as-is and only clamped at the
	// floor; a negative discount legitimately raises the display price.
	assert.Equal(t, 150.0, utils.FinalPrice(100, -50))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$80.00", utils.FormatUSD(80))
	assert.Equal(t, "$1234.50", utils.FormatUSD(1234.5))
	assert.Equal(t, "$0.00", utils.FormatUSD(0))
}
