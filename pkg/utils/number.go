package utils

import "math"

// Round arredonda f para a quantidade de casas decimais informada
func Round(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	factor := math.Pow(10, float64(places))
	return math.Round(f*factor) / factor
}

func RoundWithOneDecimalPlace(f float64) float64 {
	return Round(f, 1)
}

func RoundWithTwoDecimalPlace(f float64) float64 {
	return Round(f, 2)
}
