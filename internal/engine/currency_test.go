package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{999.5, "$999.50"},
		{1000, "$1,000.00"},
		{12345.5, "$12,345.50"},
		{1234567.89, "$1,234,567.89"},
		{-2500, "-$2,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatUSD(tt.amount))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "20.0%", FormatPercent(0.2))
	assert.Equal(t, "33.3%", FormatPercent(1.0/3.0))
	assert.Equal(t, "100.0%", FormatPercent(1))
	assert.Equal(t, "0.0%", FormatPercent(0))
}
