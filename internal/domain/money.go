package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

// MaxMoney is the largest amount a price column can hold (10 digits, 2 decimal places).
const MaxMoney Money = 99_999_999_99

// ParseMoney parses a non-negative decimal amount with at most two
// fractional digits, e.g. "12", "12.5" or "12.50".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, fmt.Errorf("%w: amount must have at most two decimal places", ErrInvalidInput)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q is not a valid amount", ErrInvalidInput, s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > int64(MaxMoney/100) {
		return 0, fmt.Errorf("%w: amount is too large", ErrInvalidInput)
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)

	m := Money(units*100 + cents)
	if m > MaxMoney {
		return 0, fmt.Errorf("%w: amount is too large", ErrInvalidInput)
	}
	return m, nil
}

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
