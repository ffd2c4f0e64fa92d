package analytics

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

// NamedSeries associa um nome de série ao resultado de uma agregação
type NamedSeries struct {
	Name   string
	Result domain.AggregationResult
}

func Series(name string, result domain.AggregationResult) NamedSeries {
	return NamedSeries{Name: name, Result: result}
}

// Assemble junta séries já alinhadas à mesma janela num Dataset. Os rótulos
// vêm da primeira série; séries de tamanhos diferentes são erro de contrato.
func Assemble(series ...NamedSeries) (domain.Dataset, error) {
	dataset := domain.Dataset{
		Labels: []string{},
		Series: make(map[string][]float64, len(series)),
		Order:  make([]string, 0, len(series)),
	}
	if len(series) == 0 {
		return dataset, nil
	}

	dataset.Labels = series[0].Result.Labels()
	for _, s := range series {
		if s.Result.Len() != len(dataset.Labels) {
			return domain.Dataset{}, errors.Wrapf(ErrShapeMismatch, "series %q has %d points, expected %d", s.Name, s.Result.Len(), len(dataset.Labels))
		}
		if _, exists := dataset.Series[s.Name]; exists {
			return domain.Dataset{}, errors.Wrapf(ErrDuplicateSeries, "series %q", s.Name)
		}
		dataset.Series[s.Name] = s.Result.Values()
		dataset.Order = append(dataset.Order, s.Name)
	}

	return dataset, nil
}
