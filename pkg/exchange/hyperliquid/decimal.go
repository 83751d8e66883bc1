package hyperliquid

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var decimalPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseDecimal parses a plain decimal string. Scientific notation, signs
// without digits and other exotic forms are rejected.
func ParseDecimal(s string) (decimal.Decimal, error) {
	if !decimalPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return d, nil
}

// MultiplyFixed multiplies two decimal strings and truncates the product to
// the given number of fractional digits. The result never rounds up.
func MultiplyFixed(a, b string, decimals int32) (string, error) {
	da, err := ParseDecimal(a)
	if err != nil {
		return "", err
	}
	db, err := ParseDecimal(b)
	if err != nil {
		return "", err
	}
	return da.Mul(db).Truncate(decimals).String(), nil
}

// DivideFixed divides a by b and truncates the quotient to the given number of
// fractional digits.
func DivideFixed(a, b string, decimals int32) (string, error) {
	da, err := ParseDecimal(a)
	if err != nil {
		return "", err
	}
	db, err := ParseDecimal(b)
	if err != nil {
		return "", err
	}
	if db.IsZero() {
		return "", ErrDivisionByZero
	}
	quotient, _ := da.QuoRem(db, decimals)
	return quotient.String(), nil
}

// GreaterThan reports a > b for decimal strings.
func GreaterThan(a, b string) (bool, error) {
	da, err := ParseDecimal(a)
	if err != nil {
		return false, err
	}
	db, err := ParseDecimal(b)
	if err != nil {
		return false, err
	}
	return da.GreaterThan(db), nil
}

// LessOrEqual reports a <= b for decimal strings.
func LessOrEqual(a, b string) (bool, error) {
	gt, err := GreaterThan(a, b)
	if err != nil {
		return false, err
	}
	return !gt, nil
}

// IsPositiveDecimal reports whether s parses as a decimal strictly above zero.
func IsPositiveDecimal(s string) bool {
	d, err := ParseDecimal(s)
	if err != nil {
		return false
	}
	return d.IsPositive()
}
