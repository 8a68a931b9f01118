package converter

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// GramsPerKg scales a per-gram price up to a per-kilogram price.
const GramsPerKg = 1000

// ErrInvalidInput is returned when the mass or price cannot be used for a calculation.
var ErrInvalidInput = errors.New("invalid input")

// Result holds the raw inputs of a calculation together with the computed unit price.
type Result struct {
	Mass        float64
	TotalPrice  float64
	UnitPriceKg float64
}

// UnitPricePerKg returns (totalPrice / mass) * 1000. A result that does not
// fit in a float64 is rejected like any other invalid input.
func UnitPricePerKg(mass, totalPrice float64) (float64, error) {
	if !isFinite(mass) || !isFinite(totalPrice) {
		return 0, ErrInvalidInput
	}
	if mass <= 0 || totalPrice < 0 {
		return 0, ErrInvalidInput
	}
	unit := (totalPrice / mass) * GramsPerKg
	// tiny masses or huge prices overflow
	if !isFinite(unit) {
		return 0, ErrInvalidInput
	}
	return unit, nil
}

// Parse converts the two raw text inputs to numbers.
func Parse(rawMass, rawPrice string) (float64, float64, error) {
	mass, err := parseNumber(rawMass)
	if err != nil {
		return 0, 0, err
	}
	price, err := parseNumber(rawPrice)
	if err != nil {
		return 0, 0, err
	}
	return mass, price, nil
}

// Calculate parses both inputs and computes the unit price.
func Calculate(rawMass, rawPrice string) (Result, error) {
	mass, price, err := Parse(rawMass, rawPrice)
	if err != nil {
		return Result{}, err
	}
	unit, err := UnitPricePerKg(mass, price)
	if err != nil {
		return Result{}, err
	}
	return Result{Mass: mass, TotalPrice: price, UnitPriceKg: unit}, nil
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidInput
	}
	// pt-BR keypads produce a decimal comma
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, ErrInvalidInput
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
