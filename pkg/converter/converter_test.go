package converter

import (
	"errors"
	"math"
	"testing"
)

func TestUnitPricePerKg(t *testing.T) {
	tests := []struct {
		mass, price, want float64
	}{
		{250, 12.50, 50},
		{1000, 7.99, 7.99},
		{500, 0, 0},
		{1, 0.01, 10},
		{333, 10, 30.03003003003003},
	}
	for _, tt := range tests {
		got, err := UnitPricePerKg(tt.mass, tt.price)
		if err != nil {
			t.Fatalf("UnitPricePerKg(%v, %v) unexpected error: %v", tt.mass, tt.price, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("UnitPricePerKg(%v, %v) = %v, want %v", tt.mass, tt.price, got, tt.want)
		}
	}
}

func TestUnitPricePerKgRejectsInvalid(t *testing.T) {
	tests := []struct {
		name        string
		mass, price float64
	}{
		{"zero mass", 0, 10},
		{"negative mass", -5, 10},
		{"negative price", 100, -1},
		{"nan mass", math.NaN(), 10},
		{"inf price", 100, math.Inf(1)},
		{"overflowing price", 1, 1e306},
		{"subnormal mass", 1e-310, 1},
	}
	for _, tt := range tests {
		if _, err := UnitPricePerKg(tt.mass, tt.price); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tt.name, err)
		}
	}
}

func TestCalculate(t *testing.T) {
	r, err := Calculate(" 250 ", "12.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Mass != 250 || r.TotalPrice != 12.5 {
		t.Fatalf("unexpected inputs: %+v", r)
	}
	if math.Abs(r.UnitPriceKg-50) > 1e-9 {
		t.Fatalf("expected 50, got %v", r.UnitPriceKg)
	}
}

func TestCalculateDecimalComma(t *testing.T) {
	r, err := Calculate("250", "12,50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r.UnitPriceKg-50) > 1e-9 {
		t.Fatalf("expected 50, got %v", r.UnitPriceKg)
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	inputs := [][2]string{
		{"", "10"},
		{"abc", "10"},
		{"100", ""},
		{"100", "dez"},
		{"0", "10"},
		{"-1", "10"},
		{"NaN", "10"},
		{"1.000,50", "10"},
		{"1", "1e306"},
		{"1e-310", "1"},
	}
	for _, in := range inputs {
		if _, err := Calculate(in[0], in[1]); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Calculate(%q, %q): expected ErrInvalidInput, got %v", in[0], in[1], err)
		}
	}
}

func TestFormatter(t *testing.T) {
	r := Result{Mass: 250, TotalPrice: 12.5, UnitPriceKg: 50}

	pt := Formatter{Locale: LocalePT}
	if got := pt.FormatResult(r); got != "Valor por KG: R$ 50.00" {
		t.Fatalf("unexpected pt result: %q", got)
	}
	if got := pt.FormatEntry(r); got != "Gramas: 250.0, Valor: R$ 12.50 -> Valor por KG: R$ 50.00" {
		t.Fatalf("unexpected pt entry: %q", got)
	}

	en := Formatter{Locale: LocaleEN}
	if got := en.FormatEntry(r); got != "Mass: 250.0, Price: R$ 12.50 -> Unit price: R$ 50.00" {
		t.Fatalf("unexpected en entry: %q", got)
	}
}

func TestFormatMass(t *testing.T) {
	tests := map[float64]string{
		250:       "250.0",
		12.5:      "12.5",
		0.001:     "0.001",
		9999999:   "9999999.0",
		1e7:       "1.0E7",
		12345678:  "1.2345678E7",
		0.0001:    "1.0E-4",
		0.0001234: "1.234E-4",
		1e21:      "1.0E21",
	}
	for in, want := range tests {
		if got := formatMass(in); got != want {
			t.Fatalf("formatMass(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLocale(t *testing.T) {
	for in, want := range map[string]Locale{"": LocalePT, "PT-BR": LocalePT, "en": LocaleEN} {
		got, err := ParseLocale(in)
		if err != nil || got != want {
			t.Fatalf("ParseLocale(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseLocale("fr"); err == nil {
		t.Fatalf("expected error for unknown locale")
	}
}
