package util

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate_Valid(t *testing.T) {
	testCases := map[string]time.Time{
		"2024-01-01":           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"2024-12-31":           time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		"2024-03-01T10:00:00Z": time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	for in, want := range testCases {
		got, err := ParseDate("startDate", in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, in := range testCases {
		_, err := ParseDate("startDate", in)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("ParseDate(%q) error = %v, want ErrValidation", in, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	pos := decimal.RequireFromString("0.01")
	zero := decimal.Zero
	neg := decimal.NewFromInt(-5)
	subCent := decimal.RequireFromString("1.005")

	if err := ValidateAmount("allocatedAmount", &pos); err != nil {
		t.Errorf("ValidateAmount(0.01) error = %v, want nil", err)
	}
	for _, amt := range []*decimal.Decimal{nil, &zero, &neg, &subCent} {
		if err := ValidateAmount("allocatedAmount", amt); !errors.Is(err, ErrValidation) {
			t.Errorf("ValidateAmount(%v) error = %v, want ErrValidation", amt, err)
		}
	}
}

func TestValidatePrecision(t *testing.T) {
	for _, ok := range []string{"0.3", "-12.50", "100"} {
		if err := ValidatePrecision("amount", decimal.RequireFromString(ok)); err != nil {
			t.Errorf("ValidatePrecision(%s) error = %v, want nil", ok, err)
		}
	}
	if err := ValidatePrecision("amount", decimal.RequireFromString("0.001")); !errors.Is(err, ErrValidation) {
		t.Errorf("ValidatePrecision(0.001) error = %v, want ErrValidation", err)
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("name", "Groceries", 64); err != nil {
		t.Errorf("ValidateName() error = %v, want nil", err)
	}
	if err := ValidateName("name", "   ", 64); err == nil {
		t.Error("ValidateName(blank) error = nil, want error")
	}
	if err := ValidateName("name", "abcdef", 5); err == nil {
		t.Error("ValidateName(too long) error = nil, want error")
	}
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "jane.doe@example.com"} {
		if err := ValidateEmail(ok); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "jane", "Jane <jane@example.com>", "@example.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("ValidatePassword() error = %v, want nil", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("ValidatePassword(short) error = nil, want error")
	}
}
