package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"1", "R$ 1,00"},
		{"12.5", "R$ 12,50"},
		{"999.999", "R$ 1.000,00"},
		{"1234.56", "R$ 1.234,56"},
		{"123456.7", "R$ 123.456,70"},
		{"1000000", "R$ 1.000.000,00"},
		{"-1500.25", "R$ -1.500,25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseBRLRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "0.01", "1.005", "1234.56", "987654321.987", "999999999999.99"} {
		t.Run(in, func(t *testing.T) {
			d := decimal.RequireFromString(in)
			got, err := ParseBRL(FormatBRL(d))
			require.NoError(t, err)
			assert.True(t, Quantize(d).Equal(got), "want %s, got %s", Quantize(d), got)
		})
	}
}

func TestParseBRLInvalid(t *testing.T) {
	_, err := ParseBRL("R$ dez")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	d, ok := ParseAmount("1500,50")
	require.True(t, ok)
	assert.Equal(t, "1500.5", d.String())

	d, ok = ParseAmount(" 42.10 ")
	require.True(t, ok)
	assert.Equal(t, "42.1", d.String())

	_, ok = ParseAmount("")
	assert.False(t, ok)

	_, ok = ParseAmount("abc")
	assert.False(t, ok)

	_, ok = ParseAmount("1.234,56")
	assert.False(t, ok)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, DatePlaceholder, FormatDate(nil))

	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", FormatDate(&d))
	assert.Equal(t, "2024-03-05", FormatInputDate(&d))
	assert.Equal(t, "", FormatInputDate(nil))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "31/12/2024", FormatDate(got))

	got, err = ParseDate("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDate("31/12/2024")
	assert.Error(t, err)
}
