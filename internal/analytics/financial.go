package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

// minorUnitExponent converte centavos em unidades da moeda (duas casas decimais)
const minorUnitExponent = -2

// IsActiveAt indica se a assinatura estava ativa no instante t
func IsActiveAt(sub domain.Subscription, t time.Time) bool {
	if sub.CreatedAt == nil || sub.CreatedAt.After(t) {
		return false
	}
	return sub.CanceledAt == nil || sub.CanceledAt.After(t)
}

// ActiveCount conta as assinaturas ativas em t
func ActiveCount(subs []domain.Subscription, t time.Time) int {
	count := 0
	for _, s := range subs {
		if IsActiveAt(s, t) {
			count++
		}
	}
	return count
}

// MRR soma o valor de plano das assinaturas ativas em t. Não normaliza o
// intervalo de cobrança: planos anuais entram pelo valor cheio.
func MRR(subs []domain.Subscription, t time.Time) float64 {
	return mrrDecimal(subs, t).InexactFloat64()
}

// ARR é o MRR anualizado
func ARR(subs []domain.Subscription, t time.Time) float64 {
	return mrrDecimal(subs, t).Mul(decimal.NewFromInt(12)).InexactFloat64()
}

// ARPU é a receita média por assinatura ativa, zero sem assinaturas ativas
func ARPU(subs []domain.Subscription, t time.Time) float64 {
	active := ActiveCount(subs, t)
	if active == 0 {
		return 0
	}
	return mrrDecimal(subs, t).Div(decimal.NewFromInt(int64(active))).Round(2).InexactFloat64()
}

func mrrDecimal(subs []domain.Subscription, t time.Time) decimal.Decimal {
	var cents int64
	for _, s := range subs {
		if IsActiveAt(s, t) {
			cents += s.AmountMinorUnits()
		}
	}
	return decimal.New(cents, minorUnitExponent)
}

// NewInPeriod conta assinaturas criadas no período cujo status atual ainda é
// "active". Assinaturas criadas e canceladas no mesmo período não entram.
func NewInPeriod(subs []domain.Subscription, p domain.Period) int {
	count := 0
	for _, s := range subs {
		if s.CreatedAt != nil && p.Contains(*s.CreatedAt) && s.Status == domain.SubscriptionStatusActive {
			count++
		}
	}
	return count
}

// ChurnedInPeriod conta assinaturas canceladas dentro do período
func ChurnedInPeriod(subs []domain.Subscription, p domain.Period) int {
	count := 0
	for _, s := range subs {
		if s.CanceledAt != nil && p.Contains(*s.CanceledAt) {
			count++
		}
	}
	return count
}

// ChurnRate é o percentual de cancelamentos do período sobre as assinaturas
// criadas antes do seu início, com uma casa decimal. Sem base, retorna 0.
func ChurnRate(subs []domain.Subscription, p domain.Period) float64 {
	base := 0
	for _, s := range subs {
		if s.CreatedAt != nil && s.CreatedAt.Before(p.Start) {
			base++
		}
	}
	if base == 0 {
		return 0
	}

	rate := float64(ChurnedInPeriod(subs, p)) / float64(base) * 100
	return utils.RoundWithOneDecimalPlace(rate)
}

// activeDuring indica se a assinatura contribui para o MRR do mês: criada até
// o último instante do mês e não cancelada antes do seu início
func activeDuring(sub domain.Subscription, p domain.Period) bool {
	if sub.CreatedAt == nil || sub.CreatedAt.After(p.LastInstant()) {
		return false
	}
	return sub.CanceledAt == nil || sub.CanceledAt.After(p.Start)
}

// MRRTrend calcula MRR, novas e canceladas de cada mês da janela
func MRRTrend(subs []domain.Subscription, periods []domain.Period) []domain.MRRTrendPoint {
	points := make([]domain.MRRTrendPoint, len(periods))
	for i, p := range periods {
		var cents int64
		for _, s := range subs {
			if activeDuring(s, p) {
				cents += s.AmountMinorUnits()
			}
		}

		points[i] = domain.MRRTrendPoint{
			Label:   p.Label(),
			MRR:     decimal.New(cents, minorUnitExponent).InexactFloat64(),
			New:     NewInPeriod(subs, p),
			Churned: ChurnedInPeriod(subs, p),
		}
	}
	return points
}

// MRRTrendSeries separa a tendência em séries prontas para o montador de datasets
func MRRTrendSeries(points []domain.MRRTrendPoint) (mrr, added, churned domain.AggregationResult) {
	mrr.Points = make([]domain.SeriesPoint, len(points))
	added.Points = make([]domain.SeriesPoint, len(points))
	churned.Points = make([]domain.SeriesPoint, len(points))
	for i, p := range points {
		mrr.Points[i] = domain.SeriesPoint{Label: p.Label, Value: p.MRR}
		added.Points[i] = domain.SeriesPoint{Label: p.Label, Value: float64(p.New)}
		churned.Points[i] = domain.SeriesPoint{Label: p.Label, Value: float64(p.Churned)}
	}
	return mrr, added, churned
}

// Snapshot resume as assinaturas no período que contém reference
func Snapshot(subs []domain.Subscription, periods []domain.Period, reference time.Time) domain.SubscriptionMetrics {
	current := domain.NewPeriod(reference)
	if idx, ok := BucketOf(&reference, periods); ok {
		current = periods[idx]
	}

	return domain.SubscriptionMetrics{
		MRR:               MRR(subs, reference),
		ARR:               ARR(subs, reference),
		ARPU:              ARPU(subs, reference),
		ActiveCount:       ActiveCount(subs, reference),
		NewThisPeriod:     NewInPeriod(subs, current),
		ChurnedThisPeriod: ChurnedInPeriod(subs, current),
		ChurnRate:         ChurnRate(subs, current),
	}
}
