package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

// DefaultPeriodCount é a quantidade de meses exibida quando nada é informado
const DefaultPeriodCount = 6

// MaxPeriodCount limita a janela a dez anos de meses
const MaxPeriodCount = 120

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity converte o texto recebido em Granularity. Vazio vira mês.
func ParseGranularity(value string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(value)))
	if g == "" {
		return GranularityMonth, nil
	}
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g, nil
}

// Validate aceita apenas granularidade mensal; as demais são reconhecidas mas não suportadas
func (g Granularity) Validate() error {
	switch g {
	case GranularityMonth:
		return nil
	case GranularityDay, GranularityWeek, GranularityYear:
		return errors.Wrapf(ErrUnsupportedGranularity, "granularity %q is not available yet", g)
	default:
		return errors.Wrapf(ErrUnsupportedGranularity, "unknown granularity %q", g)
	}
}

// GeneratePeriods gera count meses consecutivos terminando no mês que contém
// reference, do mais antigo para o mais recente, no fuso de reference.
func GeneratePeriods(count int, reference time.Time) ([]domain.Period, error) {
	if count < 1 || count > MaxPeriodCount {
		return nil, errors.Wrapf(ErrInvalidPeriodCount, "got %d, want 1..%d", count, MaxPeriodCount)
	}

	first := time.Date(reference.Year(), reference.Month()-time.Month(count-1), 1, 0, 0, 0, 0, reference.Location())

	periods := make([]domain.Period, 0, count)
	current := domain.NewPeriod(first)
	for i := 0; i < count; i++ {
		periods = append(periods, current)
		current = current.Next()
	}

	return periods, nil
}

// BucketOf retorna o índice do período que contém ts.
// Timestamp ausente ou fora da janela retorna false.
func BucketOf(ts *time.Time, periods []domain.Period) (int, bool) {
	if ts == nil || len(periods) == 0 {
		return 0, false
	}

	t := *ts
	idx := sort.Search(len(periods), func(i int) bool {
		return t.Before(periods[i].End)
	})
	if idx == len(periods) || !periods[idx].Contains(t) {
		return 0, false
	}

	return idx, true
}

// PeriodKeys retorna as chaves mm-yyyy da janela
func PeriodKeys(periods []domain.Period) []string {
	keys := make([]string, len(periods))
	for i, p := range periods {
		keys[i] = p.Key()
	}
	return keys
}

// PeriodLabels retorna os rótulos de exibição da janela
func PeriodLabels(periods []domain.Period) []string {
	labels := make([]string, len(periods))
	for i, p := range periods {
		labels[i] = p.Label()
	}
	return labels
}
