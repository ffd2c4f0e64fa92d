package analytics

import (
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

// DateKeyLayout é o formato das chaves da série acumulada por data
const DateKeyLayout = time.DateOnly

// AggregateSum soma value(r) no período de cada registro. Registros sem
// timestamp ou fora da janela são ignorados; períodos vazios valem 0.
func AggregateSum[T any](records []T, periods []domain.Period, timestamp func(T) *time.Time, value func(T) float64) domain.AggregationResult {
	sums := make([]float64, len(periods))
	for _, r := range records {
		if idx, ok := BucketOf(timestamp(r), periods); ok {
			sums[idx] += value(r)
		}
	}
	return newResult(periods, sums)
}

// AggregateDecimalSum soma valores monetários em decimal e converte para
// float apenas no resultado final
func AggregateDecimalSum[T any](records []T, periods []domain.Period, timestamp func(T) *time.Time, value func(T) decimal.Decimal) domain.AggregationResult {
	sums := make([]decimal.Decimal, len(periods))
	for i := range sums {
		sums[i] = decimal.Zero
	}

	for _, r := range records {
		if idx, ok := BucketOf(timestamp(r), periods); ok {
			sums[idx] = sums[idx].Add(value(r))
		}
	}

	values := lo.Map(sums, func(d decimal.Decimal, _ int) float64 {
		return d.InexactFloat64()
	})
	return newResult(periods, values)
}

// AggregateCount conta os registros de cada período
func AggregateCount[T any](records []T, periods []domain.Period, timestamp func(T) *time.Time) domain.AggregationResult {
	counts := make([]float64, len(periods))
	for _, r := range records {
		if idx, ok := BucketOf(timestamp(r), periods); ok {
			counts[idx]++
		}
	}
	return newResult(periods, counts)
}

// AggregateCumulativeCount gera uma série esparsa por data (yyyy-mm-dd) com o
// total acumulado de registros, considerando apenas datas presentes nos dados.
func AggregateCumulativeCount[T any](records []T, timestamp func(T) *time.Time, loc *time.Location) domain.AggregationResult {
	if loc == nil {
		loc = time.Local
	}

	perDate := make(map[string]int)
	for _, r := range records {
		ts := timestamp(r)
		if ts == nil {
			continue
		}
		perDate[ts.In(loc).Format(DateKeyLayout)]++
	}

	dates := lo.Keys(perDate)
	slices.Sort(dates)

	points := make([]domain.SeriesPoint, 0, len(dates))
	running := 0
	for _, date := range dates {
		running += perDate[date]
		points = append(points, domain.SeriesPoint{Label: date, Value: float64(running)})
	}

	return domain.AggregationResult{Points: points}
}

// RunningTotal acumula a série a partir do início da janela
func RunningTotal(result domain.AggregationResult) domain.AggregationResult {
	points := make([]domain.SeriesPoint, len(result.Points))
	var running float64
	for i, p := range result.Points {
		running += p.Value
		points[i] = domain.SeriesPoint{Label: p.Label, Value: running}
	}
	return domain.AggregationResult{Points: points}
}

// Subtract retorna a - b ponto a ponto, com os rótulos de a
func Subtract(a, b domain.AggregationResult) (domain.AggregationResult, error) {
	if len(a.Points) != len(b.Points) {
		return domain.AggregationResult{}, errors.Wrapf(ErrShapeMismatch, "cannot subtract %d points from %d", len(b.Points), len(a.Points))
	}

	points := make([]domain.SeriesPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = domain.SeriesPoint{
			Label: p.Label,
			Value: decimal.NewFromFloat(p.Value).Sub(decimal.NewFromFloat(b.Points[i].Value)).InexactFloat64(),
		}
	}
	return domain.AggregationResult{Points: points}, nil
}

// FilterRecords mantém apenas os registros aceitos por keep
func FilterRecords[T any](records []T, keep func(T) bool) []T {
	return lo.Filter(records, func(r T, _ int) bool {
		return keep(r)
	})
}

// CountMissing conta registros sem timestamp, excluídos de qualquer período
func CountMissing[T any](records []T, timestamp func(T) *time.Time) int {
	return lo.CountBy(records, func(r T) bool {
		return timestamp(r) == nil
	})
}

func newResult(periods []domain.Period, values []float64) domain.AggregationResult {
	points := make([]domain.SeriesPoint, len(periods))
	for i, p := range periods {
		points[i] = domain.SeriesPoint{Label: p.Label(), Value: values[i]}
	}
	return domain.AggregationResult{Points: points}
}
