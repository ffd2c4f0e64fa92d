package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatios(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "Divisão por zero", got: SafeRatio(10, 0), want: 0},
		{name: "Divisão simples", got: SafeRatio(1, 4), want: 0.25},
		{name: "Taxa de recebimento", got: CollectionRate(100, 350), want: 28.6},
		{name: "Taxa de recebimento sem faturamento", got: CollectionRate(0, 0), want: 0},
		{name: "Crescimento positivo", got: GrowthRate(150, 100), want: 50},
		{name: "Queda", got: GrowthRate(50, 200), want: -75},
		{name: "Crescimento sem base anterior", got: GrowthRate(80, 0), want: 0},
		{name: "Crescimento sobre base negativa", got: GrowthRate(-50, -100), want: 50},
		{name: "Crescimento da série", got: SeriesGrowth([]float64{10, 20, 30}), want: 50},
		{name: "Série curta", got: SeriesGrowth([]float64{10}), want: 0},
		{name: "Taxa de ganho", got: WinRate(3, 1), want: 75},
		{name: "Taxa de ganho sem negócios encerrados", got: WinRate(0, 0), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
