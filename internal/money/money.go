package money

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount with two fractional digits.
// The zero value is "unset" and distinguishable from an amount of 0.00,
// so optional amounts do not need pointer plumbing.
type Money struct {
	dec decimal.Decimal
	set bool
}

// New builds a set Money from a decimal, rounded to two fractional digits.
func New(d decimal.Decimal) Money {
	return Money{dec: d.Round(2), set: true}
}

// FromString parses a decimal string such as "100.00" or "-3.5".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return New(d), nil
}

// MustParse is FromString for tests and constants; it panics on bad input.
func MustParse(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromCents builds a Money from an integer count of minor units.
func FromCents(cents int64) Money {
	return Money{dec: decimal.New(cents, -2), set: true}
}

// Zero returns a set amount of 0.00.
func Zero() Money {
	return New(decimal.Zero)
}

// IsSet reports whether the value was initialized.
func (m Money) IsSet() bool { return m.set }

// IsZero reports whether the value is set and equals 0.00.
func (m Money) IsZero() bool { return m.set && m.dec.IsZero() }

// IsPositive reports whether the value is set and strictly greater than zero.
func (m Money) IsPositive() bool { return m.set && m.dec.IsPositive() }

// Add returns m + o rounded to two fractional digits.
func (m Money) Add(o Money) Money { return New(m.dec.Add(o.dec)) }

// Sub returns m - o rounded to two fractional digits.
func (m Money) Sub(o Money) Money { return New(m.dec.Sub(o.dec)) }

// GreaterThan reports m > o.
func (m Money) GreaterThan(o Money) bool { return m.dec.GreaterThan(o.dec) }

// LessThan reports m < o.
func (m Money) LessThan(o Money) bool { return m.dec.LessThan(o.dec) }

// Equal reports value equality; both operands must be set.
func (m Money) Equal(o Money) bool { return m.set == o.set && m.dec.Equal(o.dec) }

// Cents returns the amount as an integer count of minor units.
func (m Money) Cents() int64 {
	return m.dec.Shift(2).IntPart()
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.dec }

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	if !m.set {
		return "<unset>"
	}
	return m.dec.StringFixed(2)
}

var jsonNull = []byte("null")

// MarshalJSON renders the amount as a bare JSON number, or null when unset.
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.set {
		return jsonNull, nil
	}
	return []byte(m.dec.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number, a quoted decimal string, or null.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*m = Money{}
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
