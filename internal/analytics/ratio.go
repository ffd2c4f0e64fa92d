package analytics

import (
	"math"

	"github.com/vfg2006/business-reports-api/pkg/utils"
)

// SafeRatio divide numerator por denominator, retornando 0 quando o denominador é 0
func SafeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Percentage retorna numerator/denominator em percentual com uma casa decimal
func Percentage(numerator, denominator float64) float64 {
	return utils.RoundWithOneDecimalPlace(SafeRatio(numerator, denominator) * 100)
}

// GrowthRate é a variação percentual de previous para current.
// Sem valor anterior não há base de comparação e o resultado é 0.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return utils.RoundWithOneDecimalPlace((current - previous) / math.Abs(previous) * 100)
}

// SeriesGrowth compara os dois últimos pontos de uma série
func SeriesGrowth(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return GrowthRate(values[len(values)-1], values[len(values)-2])
}

// CollectionRate é o percentual pago sobre o total faturado
func CollectionRate(paid, total float64) float64 {
	return Percentage(paid, total)
}

// WinRate é o percentual de negócios ganhos entre os encerrados
func WinRate(won, lost int) float64 {
	return Percentage(float64(won), float64(won+lost))
}
