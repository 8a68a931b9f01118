package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Locale selects the wording used for result and history messages.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
)

// ParseLocale maps a config value to a Locale, defaulting to Portuguese.
func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pt", "pt-br", "pt_br":
		return LocalePT, nil
	case "en", "en-us", "en_us":
		return LocaleEN, nil
	}
	return "", fmt.Errorf("unknown locale %q", s)
}

// Formatter turns a Result into the text shown to the user and stored in history.
type Formatter struct {
	Locale Locale
}

// FormatResult returns the single line shown in the result area.
func (f Formatter) FormatResult(r Result) string {
	if f.Locale == LocaleEN {
		return fmt.Sprintf("Unit price: R$ %.2f", r.UnitPriceKg)
	}
	return fmt.Sprintf("Valor por KG: R$ %.2f", r.UnitPriceKg)
}

// FormatEntry returns the history entry for r. The stored string is final:
// nothing downstream keeps the numeric fields.
func (f Formatter) FormatEntry(r Result) string {
	if f.Locale == LocaleEN {
		return fmt.Sprintf("Mass: %s, Price: R$ %.2f -> %s", formatMass(r.Mass), r.TotalPrice, f.FormatResult(r))
	}
	return fmt.Sprintf("Gramas: %s, Valor: R$ %.2f -> %s", formatMass(r.Mass), r.TotalPrice, f.FormatResult(r))
}

// InvalidInputMessage is the fixed text shown instead of a result when input is rejected.
func (f Formatter) InvalidInputMessage() string {
	if f.Locale == LocaleEN {
		return "Please enter the product grams and price correctly."
	}
	return "Por favor, insira as gramas e o valor do produto corretamente."
}

// formatMass prints a double like the JVM does: plain decimal with at least
// one fractional digit in [1e-3, 1e7), scientific ("1.0E7", "1.5E-4") outside.
func formatMass(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-3 || a >= 1e7) {
		s := strconv.FormatFloat(v, 'E', -1, 64)
		mant, exp, _ := strings.Cut(s, "E")
		if !strings.Contains(mant, ".") {
			mant += ".0"
		}
		e, err := strconv.Atoi(exp)
		if err != nil {
			return s
		}
		return mant + "E" + strconv.Itoa(e)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
