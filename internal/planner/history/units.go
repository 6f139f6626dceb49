package history

import (
	"fmt"
	"math"
	"strings"
)

const (
	kgToLbs = 2.20462
	lbsToKg = 0.453592
)

// NormalizeUnit maps the accepted spellings of a weight unit to "kg" or "lbs".
func NormalizeUnit(unit string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "kg", "kgs", "kilo", "kilos":
		return "kg", nil
	case "lb", "lbs", "pound", "pounds":
		return "lbs", nil
	default:
		return "", fmt.Errorf("unknown weight unit: %q", unit)
	}
}

// ConvertWeight converts value between kg and lbs, rounded to one decimal.
func ConvertWeight(value float64, from, to string) (float64, error) {
	fromUnit, err := NormalizeUnit(from)
	if err != nil {
		return 0, err
	}
	toUnit, err := NormalizeUnit(to)
	if err != nil {
		return 0, err
	}

	if fromUnit == toUnit {
		return value, nil
	}

	factor := kgToLbs
	if fromUnit == "lbs" {
		factor = lbsToKg
	}
	return math.Round(value*factor*10) / 10, nil
}
