package taxengine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal string such as "150000.50". Empty input is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return zero, fmt.Errorf("%w: %q: %v", ErrInvalidIncomeAmount, s, err)
	}
	if d.IsNegative() {
		return zero, fmt.Errorf("%w: %q is negative", ErrInvalidIncomeAmount, s)
	}
	return d, nil
}

// clampTo limits value to limit and reports whether it had to.
func clampTo(value, limit decimal.Decimal) (decimal.Decimal, bool) {
	if value.GreaterThan(limit) {
		return limit, true
	}
	return value, false
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return zero
	}
	return d
}
