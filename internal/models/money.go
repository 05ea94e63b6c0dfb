package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount with two decimal places, stored as integer cents so
// that increments and comparisons done in SQL stay exact. It marshals to
// JSON the same way decimal.Decimal does.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// ToCents converts d to minor units, rounding half away from zero.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromCents is the inverse of ToCents.
func FromCents(cents int64) Money {
	return Money{Decimal: decimal.New(cents, -2)}
}

func (m Money) Cents() int64 {
	return ToCents(m.Decimal)
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.Cents(), nil
}

// Scan implements sql.Scanner for integer cent columns.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Money{Decimal: decimal.Zero}
	case int64:
		*m = FromCents(v)
	case float64:
		*m = FromCents(decimal.NewFromFloat(v).Round(0).IntPart())
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = FromCents(d.Round(0).IntPart())
	return nil
}
