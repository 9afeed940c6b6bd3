package bussinbank

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of accounts that do not declare one.
const DefaultCurrency = "USD"

// maxAmount is the exclusive upper bound of any amount magnitude.
var maxAmount = decimal.New(1, 13)

// Money represents a monetary value, always quantized to the currency's minor unit.
//
// The empty currency is weak: it takes the currency of the other operand.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money for the given value, rounded to the currency's minor unit using banker's rounding.
func M[T int | int64 | float64 | decimal.Decimal](value T, currency string) Money {
	m := Money{value: newDecimal(value), cur: currency}
	return m.quantize()
}

func newDecimal[T int | int64 | float64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case decimal.Decimal:
		return v
	}
	panic(fmt.Sprintf("unsupported decimal type %T", value))
}

// ParseMoney parses a decimal string such as "-12.345" into a Money.
// It fails if the magnitude cannot be represented.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return Money{}, fmt.Errorf("amount %q exceeds representable precision", s)
	}
	return M(d, currency), nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

func (m Money) quantize() Money {
	m.value = m.value.RoundBank(int32(m.currency().Fraction))
	return m
}

// In returns m bound to the given currency.
func (m Money) In(currency string) Money {
	return Money{value: m.value, cur: currency}.quantize()
}

// String returns the string representation of the money value, like "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the amount as a bare JSON number with all minor unit digits, like 12.50.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.StringFixed(int32(m.currency().Fraction))), nil
}

// UnmarshalJSON reads a JSON number (or a quoted number) into a currency-less Money.
// The currency is bound by the entity owning the amount.
func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := ParseMoney(string(bytes.Trim(b, `"`)), "")
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// check that a Money pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Money)(nil)
var _ json.Unmarshaler = (*Money)(nil)
