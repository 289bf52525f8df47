package solin

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// displayCurrency is the single currency used to format amounts. The ledger
// itself is currency-agnostic: amounts are bare decimals, the currency only
// matters for display.
var displayCurrency = "INR"

// SetCurrency changes the display currency (ISO 4217 code).
func SetCurrency(code string) {
	if code != "" {
		displayCurrency = code
	}
}

// Amount is an exact monetary value.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from any numeric value.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic(fmt.Sprintf("unsupported amount type %T", value))
	}
}

// ParseAmount parses a decimal amount from its textual form.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, ErrValidation)
	}
	return Amount{value: d}, nil
}

// currency returns the display currency, never nil.
func (a Amount) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, displayCurrency).Currency()
}

// String returns the amount formatted in the display currency.
func (a Amount) String() string {
	cur := a.currency()
	dec := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (a Amount) IsZero() bool               { return a.value.IsZero() }
func (a Amount) IsPositive() bool           { return a.value.IsPositive() }
func (a Amount) IsNegative() bool           { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool        { return a.value.Equal(b.value) }
func (a Amount) GreaterThan(b Amount) bool  { return a.value.GreaterThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool { return a.value.LessThanOrEqual(b.value) }

// binary operators.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) { return a.value.MarshalJSON() }

// UnmarshalJSON reads the amount from a JSON number (or quoted number).
func (a *Amount) UnmarshalJSON(b []byte) error { return a.value.UnmarshalJSON(b) }
