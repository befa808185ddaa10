// Package money implements the fixed-point decimal amount type used
// throughout the transaction engine. Four fractional digits are exact;
// there is no floating point involved anywhere in the representation.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale is the number of fractional digits Money represents exactly.
const Scale = 4

// scaleFactor is 10^Scale, the number of Money units per whole unit.
const scaleFactor = 10000

// Money is a signed fixed-point decimal with four fractional digits,
// stored as an integer count of 1/10000ths. It follows the same
// representation as the teacher's XRPAmount: a scaled int64 rather than
// an arbitrary-precision decimal.
type Money struct {
	units int64
}

// Zero is the additive identity.
var Zero = Money{}

// FromUnits builds a Money directly from its scaled integer
// representation (units of 1/10000). Intended for tests and internal
// arithmetic; callers parsing user input should use Parse.
func FromUnits(units int64) Money {
	return Money{units: units}
}

// Parse converts a textual decimal literal such as "1.5" or "12" into a
// Money value. The literal must have at most Scale fractional digits;
// anything more precise is rejected so precision is never silently
// dropped.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("money: empty amount")
	}

	neg := false
	rest := s
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(rest, ".")
	if intPart == "" {
		return Zero, fmt.Errorf("money: %q has no integer part", s)
	}
	if !isAllDigits(intPart) {
		return Zero, fmt.Errorf("money: %q is not a decimal number", s)
	}
	if hasFrac {
		if len(fracPart) > Scale {
			return Zero, fmt.Errorf("money: %q has more than %d fractional digits", s, Scale)
		}
		if fracPart != "" && !isAllDigits(fracPart) {
			return Zero, fmt.Errorf("money: %q is not a decimal number", s)
		}
	}
	fracPart = fracPart + strings.Repeat("0", Scale-len(fracPart))

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("money: %q overflows: %w", s, err)
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("money: %q overflows: %w", s, err)
	}

	if whole > (math.MaxInt64-frac)/scaleFactor {
		return Zero, fmt.Errorf("money: %q overflows int64 units", s)
	}

	units := whole*scaleFactor + frac
	if neg {
		units = -units
	}
	return Money{units: units}, nil
}

// Add returns x+y, erroring on overflow rather than wrapping silently.
func (x Money) Add(y Money) (Money, error) {
	sum := x.units + y.units
	if (y.units > 0 && sum < x.units) || (y.units < 0 && sum > x.units) {
		return Zero, fmt.Errorf("money: addition overflow")
	}
	return Money{units: sum}, nil
}

// Sub returns x-y, erroring on overflow rather than wrapping silently.
func (x Money) Sub(y Money) (Money, error) {
	diff := x.units - y.units
	if (y.units < 0 && diff < x.units) || (y.units > 0 && diff > x.units) {
		return Zero, fmt.Errorf("money: subtraction overflow")
	}
	return Money{units: diff}, nil
}

// Cmp returns -1, 0, or 1 as x is less than, equal to, or greater than y.
func (x Money) Cmp(y Money) int {
	switch {
	case x.units < y.units:
		return -1
	case x.units > y.units:
		return 1
	default:
		return 0
	}
}

// Equal reports whether x and y represent the same amount.
func (x Money) Equal(y Money) bool {
	return x.units == y.units
}

// IsNonNegative reports whether x >= 0.
func (x Money) IsNonNegative() bool {
	return x.units >= 0
}

// IsPositive reports whether x > 0.
func (x Money) IsPositive() bool {
	return x.units > 0
}

// Units returns the raw scaled integer representation (1/10000ths).
func (x Money) Units() int64 {
	return x.units
}

// String renders the shortest decimal representation that round-trips:
// trailing fractional zeros are trimmed, and a whole amount is rendered
// without a decimal point at all.
func (x Money) String() string {
	units := x.units
	neg := units < 0
	if neg {
		units = -units
	}

	whole := units / scaleFactor
	frac := units % scaleFactor

	if frac == 0 {
		s := strconv.FormatInt(whole, 10)
		if neg {
			s = "-" + s
		}
		return s
	}

	fracStr := fmt.Sprintf("%0*d", Scale, frac)
	fracStr = strings.TrimRight(fracStr, "0")

	s := fmt.Sprintf("%d.%s", whole, fracStr)
	if neg {
		s = "-" + s
	}
	return s
}

func isAllDigits(s string) bool {
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
