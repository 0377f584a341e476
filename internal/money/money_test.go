package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRate(t *testing.T) {
	t.Run("Exact percentage", func(t *testing.T) {
		// 10% of 10,000.00
		assert.Equal(t, int64(100000), ApplyRate(1000000, 0.10))
	})

	t.Run("Rounds half up", func(t *testing.T) {
		// 5% of 0.30 = 1.5 paise -> 2
		assert.Equal(t, int64(2), ApplyRate(30, 0.05))
	})

	t.Run("Rounds down below half", func(t *testing.T) {
		// 5% of 0.28 = 1.4 paise -> 1
		assert.Equal(t, int64(1), ApplyRate(28, 0.05))
	})

	t.Run("Zero amount", func(t *testing.T) {
		assert.Equal(t, int64(0), ApplyRate(0, 0.95))
	})

	t.Run("Zero rate", func(t *testing.T) {
		assert.Equal(t, int64(0), ApplyRate(500000, 0))
	})

	t.Run("Negative amount rounds away from zero", func(t *testing.T) {
		assert.Equal(t, int64(-2), ApplyRate(-30, 0.05))
	})
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(1))
	assert.False(t, IsPositive(0))
	assert.False(t, IsPositive(-100))
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		paise    int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{1234550, "12345.50"},
		{1000000, "10000.00"},
		{-47500, "-475.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatINR(tt.paise))
		})
	}
}
