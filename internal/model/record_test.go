package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestRecordIsFree(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		free   bool
	}{
		{"both zero", "0", "0", true},
		{"zero with decimals", "0.0", "0.00000", true},
		{"free input paid output", "0", "0.000002", false},
		{"paid input free output", "0.000001", "0", false},
		{"both paid", "0.000001", "0.000002", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{InputPrice: tt.input, OutputPrice: tt.output}
			free, err := r.IsFree()
			require.NoError(t, err)
			assert.Equal(t, tt.free, free)
		})
	}
}

func TestRecordIsFreeBadPrice(t *testing.T) {
	r := Record{InputPrice: "gratis", OutputPrice: "0"}
	_, err := r.IsFree()
	assert.Error(t, err)
}

func TestRecordTotalPrice(t *testing.T) {
	r := Record{InputPrice: "0.000001", OutputPrice: "0.000002"}
	total, err := r.TotalPrice()
	require.NoError(t, err)
	assert.Equal(t, "0.000003", total.String())
}

func TestRecordTotalPriceExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, not a float64 artifact.
	r := Record{InputPrice: "0.1", OutputPrice: "0.2"}
	total, err := r.TotalPrice()
	require.NoError(t, err)
	assert.True(t, total.Equal(mustDecimal(t, "0.3")))
}

func TestRecordDisplayName(t *testing.T) {
	assert.Equal(t, "GPT-4o", Record{ID: "openai/gpt-4o", Name: "GPT-4o"}.DisplayName())
	assert.Equal(t, "openai/gpt-4o", Record{ID: "openai/gpt-4o"}.DisplayName())
}
