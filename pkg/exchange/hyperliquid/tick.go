package hyperliquid

import (
	"fmt"
	"strings"
)

// InferTick derives the smallest observable price increment from a price
// string: one unit in the last fractional place, or "1" for integer prices.
func InferTick(px string) (string, error) {
	px = strings.TrimSpace(px)
	if !plainNumberPattern.MatchString(px) {
		return "", fmt.Errorf("%w: price %q", ErrInvalidFormat, px)
	}
	dot := strings.IndexByte(px, '.')
	if dot < 0 || dot == len(px)-1 {
		return "1", nil
	}
	fracDigits := len(px) - dot - 1
	return "0." + strings.Repeat("0", fracDigits-1) + "1", nil
}

// TickNeighbors returns the prices exactly one tick below and above px.
func TickNeighbors(px, tick string) (below, above string, err error) {
	dp, err := ParseDecimal(px)
	if err != nil {
		return "", "", err
	}
	dt, err := ParseDecimal(tick)
	if err != nil {
		return "", "", err
	}
	return dp.Sub(dt).String(), dp.Add(dt).String(), nil
}

// TickAround infers the tick from px and returns the neighboring prices.
func TickAround(px string) (below, above string, err error) {
	tick, err := InferTick(px)
	if err != nil {
		return "", "", err
	}
	return TickNeighbors(px, tick)
}
