package hyperliquid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPricePerp(t *testing.T) {
	tests := []struct {
		name       string
		px         string
		szDecimals int
		want       string
	}{
		{"truncates to decimal budget then sig figs", "2412.734567", 4, "2412.7"},
		{"five sig figs cap", "12345.6", 0, "12345"},
		{"integer price bypasses sig figs", "123456", 0, "123456"},
		{"integer price keeps digits at tight budget", "123456", 6, "123456"},
		{"truncation to integer still capped", "123456.5", 6, "123450"},
		{"small price keeps leading zeros", "0.00012345", 0, "0.000123"},
		{"trailing zeros stripped", "102.5000", 2, "102.5"},
		{"leading dot normalized", ".5", 0, "0.5"},
		{"trailing dot normalized", "100.", 0, "100"},
		{"negative zero collapses", "-0.000", 2, "0"},
		{"szDecimals shrink budget", "1.234567", 4, "1.23"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatPrice(tc.px, tc.szDecimals, MarketPerp)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFormatPriceSpotBudget(t *testing.T) {
	// Spot budget is 8 decimals minus szDecimals.
	got, err := FormatPrice("0.000012345", 0, MarketSpot)
	require.NoError(t, err)
	require.Equal(t, "0.00001234", got)

	got, err = FormatPrice("0.000012345", 2, MarketSpot)
	require.NoError(t, err)
	require.Equal(t, "0.000012", got)
}

func TestFormatPriceErrors(t *testing.T) {
	_, err := FormatPrice("1.5e3", 0, MarketPerp)
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, err = FormatPrice("12,5", 0, MarketPerp)
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, err = FormatPrice("", 0, MarketPerp)
	require.ErrorIs(t, err, ErrInvalidFormat)

	// Truncates to zero under the perp budget.
	_, err = FormatPrice("0.0000001234", 0, MarketPerp)
	require.ErrorIs(t, err, ErrTooSmall)
}

func TestFormatPriceNeverRoundsUp(t *testing.T) {
	got, err := FormatPrice("2412.79999", 4, MarketPerp)
	require.NoError(t, err)
	require.Equal(t, "2412.7", got)

	got, err = FormatPrice("99999.99", 0, MarketPerp)
	require.NoError(t, err)
	require.Equal(t, "99999", got)
}

func TestFormatSize(t *testing.T) {
	got, err := FormatSize("1.23456789", 3)
	require.NoError(t, err)
	require.Equal(t, "1.234", got)

	got, err = FormatSize("10.000", 2)
	require.NoError(t, err)
	require.Equal(t, "10", got)

	got, err = FormatSize("0.000", 2)
	require.NoError(t, err)
	require.Equal(t, "0", got)

	_, err = FormatSize("0.0000001", 0)
	require.ErrorIs(t, err, ErrTooSmall)

	_, err = FormatSize("abc", 0)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFormatSizeIdempotent(t *testing.T) {
	inputs := []string{"1.23456789", "0.5000", "123456", "0.0001", "42."}
	for _, input := range inputs {
		for szDecimals := 0; szDecimals <= 4; szDecimals++ {
			first, err := FormatSize(input, szDecimals)
			if err != nil {
				continue
			}
			second, err := FormatSize(first, szDecimals)
			require.NoError(t, err)
			require.Equalf(t, first, second, "FormatSize(%q, %d) not idempotent", input, szDecimals)
		}
	}
}

func TestFormatPriceIdempotent(t *testing.T) {
	inputs := []string{"2412.734567", "12345.6", "0.00012345", "50000"}
	for _, input := range inputs {
		first, err := FormatPrice(input, 2, MarketPerp)
		require.NoError(t, err)
		second, err := FormatPrice(first, 2, MarketPerp)
		require.NoError(t, err)
		require.Equalf(t, first, second, "FormatPrice(%q) not idempotent", input)
	}
}

func TestTruncateToSigFigs(t *testing.T) {
	require.Equal(t, "12345.0", truncateToSigFigs("12345.6", 5))
	require.Equal(t, "0.000123450", truncateToSigFigs("0.000123456", 5))
	require.Equal(t, "-1234.50", truncateToSigFigs("-1234.56", 5))
	require.Equal(t, "0", truncateToSigFigs("0.000", 5))
}

func TestNormalizeDecimal(t *testing.T) {
	tests := map[string]string{
		"0012.500": "12.5",
		".5":       "0.5",
		"100.":     "100",
		"-0":       "0",
		"-00.10":   "-0.1",
		"0.000":    "0",
	}
	for input, expected := range tests {
		require.Equalf(t, expected, normalizeDecimal(input), "normalizeDecimal(%q)", input)
	}
}
