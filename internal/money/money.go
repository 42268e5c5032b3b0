package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

var hundred = decimal.NewFromInt(100)

// ParseMinor converts a decimal currency string such as "12.50" into
// integer minor units. At most two decimal places are accepted.
func ParseMinor(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if value.Exponent() < -2 {
		return 0, ErrTooManyDecimals
	}
	return value.Mul(hundred).IntPart(), nil
}

// FormatMinor renders minor units as a two-decimal currency string.
func FormatMinor(value int64) string {
	return decimal.NewFromInt(value).Div(hundred).StringFixed(2)
}
