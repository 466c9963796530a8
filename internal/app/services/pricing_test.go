package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name  string
		base  float64
		final float64
	}{
		{"free course stays free", 0, 0},
		{"typical price", 19.99, 20.59},
		{"round number", 100, 103},
		{"smallest price", 0.01, 0.01},
		{"rounds half up", 0.50, 0.52},
		{"sub-cent commission rounds up", 9.99, 10.29},
		{"repeating fraction", 33.33, 34.33},
		{"large price", 1999.99, 2059.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.final, FinalPrice(tt.base), 1e-9)
		})
	}
}

func TestFinalPriceWholeCents(t *testing.T) {
	// Whatever the base price, the final price never carries fractions of
	// a cent.
	for _, base := range []float64{1.11, 7.77, 12.34, 49.99, 123.45} {
		final := FinalPrice(base)
		cents := final * 100
		assert.InDelta(t, cents, float64(int64(cents+0.5)), 1e-6, "base %v", base)
	}
}
