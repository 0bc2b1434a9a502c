// Package money provides an exact two-decimal currency amount.
//
// Amounts are never held as binary floating point. Parsing rejects values that
// cannot be represented with two fractional digits, and every arithmetic
// operation stays exact.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by an amount.
const Scale = 2

// MaxIntegerDigits bounds the integer part of an amount so every value fits
// the NUMERIC(12,2) columns of the PostgreSQL store.
const MaxIntegerDigits = 10

// minExponent bounds how many fractional digits an input may spell out,
// trailing zeros included.
const minExponent = -18

var (
	ErrInvalidMoney = errors.New("invalid money amount")

	limit = decimal.New(1, MaxIntegerDigits)
)

// Money is an exact amount with two fractional digits. The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// Zero is 0.00.
var Zero = Money{}

// Parse converts a decimal string like "1200.50" into Money. Exponent
// notation is rejected.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("%w: empty", ErrInvalidMoney)
	}
	if strings.ContainsAny(s, "eE") {
		return Zero, fmt.Errorf("%w: %q uses exponent notation", ErrInvalidMoney, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal wraps d, rejecting values with more than two significant
// fractional digits or more than MaxIntegerDigits integer digits.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if exp := d.Exponent(); exp > MaxIntegerDigits || exp < minExponent {
		return Zero, fmt.Errorf("%w: exponent %d out of range", ErrInvalidMoney, exp)
	}
	if d.Abs().Cmp(limit) >= 0 {
		return Zero, fmt.Errorf("%w: %s exceeds %d integer digits", ErrInvalidMoney, d.String(), MaxIntegerDigits)
	}
	if !d.Round(Scale).Equal(d) {
		return Zero, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidMoney, d.String(), Scale)
	}
	return Money{d: d}, nil
}

// FromCents builds an amount from an integer number of hundredths.
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -Scale)}
}

// Sum adds all amounts. Sum() is Zero.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money        { return Money{d: m.d.Neg()} }

// Cmp returns -1, 0 or +1 depending on whether m is less than, equal to, or greater than o.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) IsZero() bool       { return m.d.IsZero() }
func (m Money) IsPositive() bool   { return m.d.IsPositive() }
func (m Money) IsNegative() bool   { return m.d.IsNegative() }

// Cents returns the amount in hundredths.
func (m Money) Cents() int64 {
	return m.d.Shift(Scale).IntPart()
}

// String formats the amount with exactly two fractional digits, e.g. "-200.00".
func (m Money) String() string {
	return m.d.StringFixed(Scale)
}

// MarshalJSON encodes the amount as a string so clients never see a float.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both "12.50" and 12.50.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*m = Zero
		return nil
	}
	raw = strings.Trim(raw, `"`)
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the amount as fixed-point text.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan reads TEXT, NUMERIC or INTEGER columns.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Zero
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		return m.Scan(string(v))
	case int64:
		*m = Money{d: decimal.NewFromInt(v)}
		return nil
	case float64:
		*m = Money{d: decimal.NewFromFloat(v).Round(Scale)}
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidMoney, src)
	}
}
