package render

import (
	"testing"
	"time"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{1234.5, "₹1,234.5"},
		{100.0, "₹100"},
		{123456.789, "₹1,23,456.79"},
		{12345678.0, "₹1,23,45,678"},
		{0.0, "₹0"},
		{"2500", "₹2,500"},
		{nil, ""},
		{"", ""},
		{"n/a", ""},
	}
	for _, tc := range cases {
		if got := Money(tc.in); got != tc.want {
			t.Errorf("Money(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoneyNilPointer(t *testing.T) {
	var p *float64
	if got := Money(p); got != "" {
		t.Fatalf("Money(nil *float64) = %q, want empty", got)
	}
	v := 99.0
	if got := Money(&v); got != "₹99" {
		t.Fatalf("Money(&99) = %q", got)
	}
}

func TestPct(t *testing.T) {
	if got := Pct(18.0); got != "18%" {
		t.Fatalf("Pct(18) = %q", got)
	}
	if got := Pct(12.5); got != "12.5%" {
		t.Fatalf("Pct(12.5) = %q", got)
	}
	if got := Pct(nil); got != "" {
		t.Fatalf("Pct(nil) = %q, want empty", got)
	}
}

func TestPerKg(t *testing.T) {
	if got := PerKg(2.5); got != "₹2.5/kg" {
		t.Fatalf("PerKg(2.5) = %q", got)
	}
	if got := PerKg(nil); got != "" {
		t.Fatalf("PerKg(nil) = %q, want empty", got)
	}
}

func TestAmountHasNoSymbol(t *testing.T) {
	if got := Amount(123456.789); got != "1,23,456.79" {
		t.Fatalf("Amount = %q", got)
	}
}

func TestDash(t *testing.T) {
	if got := Dash(nil); got != "—" {
		t.Fatalf("Dash(nil) = %q", got)
	}
	if got := Dash("  "); got != "—" {
		t.Fatalf("Dash(blank) = %q", got)
	}
	if got := Dash("Mumbai"); got != "Mumbai" {
		t.Fatalf("Dash(string) = %q", got)
	}
	var p *string
	if got := Dash(p); got != "—" {
		t.Fatalf("Dash(nil *string) = %q", got)
	}
	if got := Dash(true); got != "Yes" {
		t.Fatalf("Dash(true) = %q", got)
	}
}

func TestDashDate(t *testing.T) {
	if got := DashDate(nil); got != "—" {
		t.Fatalf("DashDate(nil) = %q", got)
	}
	d := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := DashDate(&d); got != "01 Apr 2025" {
		t.Fatalf("DashDate = %q", got)
	}
}

func TestNumeric(t *testing.T) {
	if _, ok := Numeric("abc"); ok {
		t.Fatalf("strings that do not parse are not numeric")
	}
	if f, ok := Numeric("42.5"); !ok || f != 42.5 {
		t.Fatalf("Numeric(\"42.5\") = %v, %v", f, ok)
	}
	if _, ok := Numeric(nil); ok {
		t.Fatalf("nil is not numeric")
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName("FD/2025-26/001"); got != "FD-2025-26-001" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
	if got := SanitizeFileName("///"); got != "" {
		t.Fatalf("SanitizeFileName(slashes) = %q", got)
	}
}
