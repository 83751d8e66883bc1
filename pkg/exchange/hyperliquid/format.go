package hyperliquid

import (
	"fmt"
	"regexp"
	"strings"
)

// MarketKind distinguishes perpetual and spot precision budgets.
type MarketKind string

const (
	MarketPerp MarketKind = "perp"
	MarketSpot MarketKind = "spot"
)

const (
	perpPriceDecimals = 6
	spotPriceDecimals = 8
	maxSigFigs        = 5
)

var (
	plainNumberPattern = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)$`)
	integerPattern     = regexp.MustCompile(`^-?\d+$`)
)

// FormatPrice renders a price string the way the venue accepts it: truncated
// to the market's decimal budget minus szDecimals, then capped at five
// significant figures. Prices given as integers skip the significant-figure
// cap; prices that merely truncate to an integer do not. Values that truncate
// to zero return ErrTooSmall.
func FormatPrice(px string, szDecimals int, kind MarketKind) (string, error) {
	px = strings.TrimSpace(px)
	if !plainNumberPattern.MatchString(px) {
		return "", fmt.Errorf("%w: price %q", ErrInvalidFormat, px)
	}
	if integerPattern.MatchString(px) {
		return normalizeDecimal(px), nil
	}

	budget := perpPriceDecimals
	if kind == MarketSpot {
		budget = spotPriceDecimals
	}
	maxDecimals := budget - szDecimals
	if maxDecimals < 0 {
		maxDecimals = 0
	}

	truncated := truncateToDecimals(px, maxDecimals)
	out := normalizeDecimal(truncateToSigFigs(truncated, maxSigFigs))
	if isZeroString(out) && !isZeroString(px) {
		return "", fmt.Errorf("%w: price %q", ErrTooSmall, px)
	}
	return out, nil
}

// FormatSize renders an order size truncated to exactly the asset's
// szDecimals. Values that truncate to zero return ErrTooSmall.
func FormatSize(sz string, szDecimals int) (string, error) {
	sz = strings.TrimSpace(sz)
	if !plainNumberPattern.MatchString(sz) {
		return "", fmt.Errorf("%w: size %q", ErrInvalidFormat, sz)
	}

	out := normalizeDecimal(truncateToDecimals(sz, szDecimals))
	if isZeroString(out) && !isZeroString(sz) {
		return "", fmt.Errorf("%w: size %q", ErrTooSmall, sz)
	}
	return out, nil
}

// truncateToDecimals drops fractional digits past maxDecimals. No rounding.
func truncateToDecimals(s string, maxDecimals int) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	if maxDecimals <= 0 {
		return s[:dot]
	}
	frac := s[dot+1:]
	if len(frac) <= maxDecimals {
		return s
	}
	return s[:dot+1+maxDecimals]
}

// truncateToSigFigs keeps at most p significant digits, zero-filling any
// remaining integer positions and dropping the fractional remainder.
func truncateToSigFigs(s string, p int) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}

	digits := intPart + fracPart
	start := -1
	for i := 0; i < len(digits); i++ {
		if digits[i] != '0' {
			start = i
			break
		}
	}
	if start < 0 {
		return "0"
	}

	kept := 0
	out := make([]byte, len(digits))
	copy(out, digits)
	for i := start; i < len(digits); i++ {
		if kept >= p {
			out[i] = '0'
		} else {
			kept++
		}
	}

	result := string(out[:len(intPart)])
	if len(fracPart) > 0 {
		result += "." + string(out[len(intPart):])
	}
	if neg {
		result = "-" + result
	}
	return result
}

// normalizeDecimal strips leading zeros on the integer part and trailing
// zeros on the fraction, restoring "0" where stripping empties a side.
func normalizeDecimal(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	hasDot := false
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
		hasDot = true
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if hasDot {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	result := intPart
	if fracPart != "" {
		result = intPart + "." + fracPart
	}
	if neg && result != "0" {
		result = "-" + result
	}
	return result
}

func isZeroString(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0', '.', '-':
		default:
			return false
		}
	}
	return true
}
