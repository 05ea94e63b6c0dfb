package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_ValueIsCents(t *testing.T) {
	tests := map[string]int64{
		"0.3":     30,
		"1200.50": 120050,
		"-25":     -2500,
		"0.005":   1,
	}
	for in, want := range tests {
		v, err := NewMoney(decimal.RequireFromString(in)).Value()
		if err != nil {
			t.Fatalf("Value(%s) error = %v", in, err)
		}
		if v != want {
			t.Errorf("Value(%s) = %v, want %d", in, v, want)
		}
	}
}

func TestMoney_Scan(t *testing.T) {
	tests := []struct {
		src  interface{}
		want string
	}{
		{int64(30), "0.3"},
		{int64(-2500), "-25"},
		{float64(7500), "75"},
		{[]byte("120050"), "1200.5"},
		{"1", "0.01"},
		{nil, "0"},
	}
	for _, tt := range tests {
		var m Money
		if err := m.Scan(tt.src); err != nil {
			t.Fatalf("Scan(%v) error = %v", tt.src, err)
		}
		if m.String() != tt.want {
			t.Errorf("Scan(%v) = %s, want %s", tt.src, m.String(), tt.want)
		}
	}

	var m Money
	if err := m.Scan(true); err == nil {
		t.Error("Scan(bool) error = nil, want error")
	}
}

func TestMoney_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{FromCents(30)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"amount":"0.3"}` {
		t.Errorf("Marshal() = %s", out)
	}

	var in struct {
		Amount Money `json:"amount"`
	}
	if err := json.Unmarshal([]byte(`{"amount":12.34}`), &in); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if in.Amount.Cents() != 1234 {
		t.Errorf("Cents() = %d, want 1234", in.Amount.Cents())
	}
}
