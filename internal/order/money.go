package order

import (
	"fmt"
	"math"
	"strings"
)

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatBRL renders a price the way the kitchen reads it: comma
// decimal separator, two places.
func FormatBRL(value float64) string {
	return strings.Replace(fmt.Sprintf("R$ %.2f", value), ".", ",", 1)
}
