package util

import (
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// accepted date layouts, most specific first
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a YYYY-MM-DD (or RFC3339) date for field.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, Invalid(field, "is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, Invalid(field, "invalid date %q, want YYYY-MM-DD", s)
}

// ValidateAmount requires a present, strictly positive amount.
func ValidateAmount(field string, amount *decimal.Decimal) error {
	if amount == nil {
		return Invalid(field, "is required")
	}
	if !amount.IsPositive() {
		return Invalid(field, "must be positive, got %s", amount.String())
	}
	return ValidatePrecision(field, *amount)
}

// ValidatePrecision rejects amounts with fractions of a cent.
func ValidatePrecision(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return Invalid(field, "at most 2 decimal places, got %s", amount.String())
	}
	return nil
}

// ValidateName rejects blank and overly long names.
func ValidateName(field, name string, max int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Invalid(field, "is required")
	}
	if len(name) > max {
		return Invalid(field, "too long, max %d characters", max)
	}
	return nil
}

// ValidateEmail checks for a bare address such as user@example.com.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return Invalid("email", "invalid address")
	}
	return nil
}

// ValidatePassword enforces 8-64 characters.
func ValidatePassword(pwd string) error {
	if len(pwd) < 8 || len(pwd) > 64 {
		return Invalid("password", "must be 8-64 characters")
	}
	return nil
}
