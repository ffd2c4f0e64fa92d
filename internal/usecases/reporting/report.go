package reporting

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

// window é a janela de períodos resolvida para uma requisição
type window struct {
	periods   []domain.Period
	reference time.Time
	loc       *time.Location
	colors    analytics.ColorAssigner
}

func newWindow(periods []domain.Period, reference time.Time) window {
	return window{
		periods:   periods,
		reference: reference,
		loc:       reference.Location(),
	}
}

// withStableColors troca a paleta por ordem de aparição pela cor fixa por categoria
func (w window) withStableColors() window {
	w.colors = analytics.StableColors(categoryColors)
	return w
}

// breakdown monta as opções comuns aos agrupamentos do relatório
func (w window) breakdown(labeler func(string) string) []analytics.BreakdownOption {
	return []analytics.BreakdownOption{
		analytics.WithColorAssigner(w.colors),
		analytics.WithLabeler(labeler),
	}
}

func (w window) info() domain.ReportWindow {
	info := domain.ReportWindow{
		Periods:   analytics.PeriodKeys(w.periods),
		Labels:    analytics.PeriodLabels(w.periods),
		Reference: w.reference,
	}
	if len(w.periods) > 0 {
		info.Start = w.periods[0].Start
		info.End = w.periods[len(w.periods)-1].End
	}
	return info
}

// categoryColors fixa a cor das categorias conhecidas quando REPORT_STABLE_COLORS está ligado
var categoryColors = map[string]string{
	"Paid":     "#10B981",
	"Sent":     "#3B82F6",
	"Overdue":  "#EF4444",
	"Draft":    "#94A3B8",
	"Positive": "#10B981",
	"Neutral":  "#F59E0B",
	"Negative": "#EF4444",
	"Won":      "#10B981",
	"Lost":     "#EF4444",
}

var callTypeLabels = map[string]string{
	domain.CallTypeHuman:   "Human",
	domain.CallTypeAIAgent: "AI Agent",
}

func invoiceCreatedAt(i domain.Invoice) *time.Time { return i.CreatedAt }
func invoiceAmount(i domain.Invoice) decimal.Decimal { return i.Amount() }
func invoiceStatus(i domain.Invoice) string { return i.Status }
func subscriptionCreatedAt(s domain.Subscription) *time.Time { return s.CreatedAt }
func customerCreatedAt(c domain.Customer) *time.Time { return c.CreatedAt }
func callStartTime(c domain.Call) *time.Time { return c.StartTime }
func dealAmount(d domain.Deal) decimal.Decimal { return d.Amount() }
func dealStage(d domain.Deal) string { return d.Stage }

func callTypeLabel(value string) string {
	if label, ok := callTypeLabels[value]; ok {
		return label
	}
	return analytics.Humanize(value)
}

func callSentiment(c domain.Call) string {
	if c.Sentiment == nil {
		return ""
	}
	return *c.Sentiment
}

func withStatus[T any](status func(T) string, values ...string) func(T) bool {
	return func(r T) bool {
		return lo.Contains(values, status(r))
	}
}

// sumAmounts soma os valores em decimal e só converte para float no final
func sumAmounts[T any](records []T, value func(T) decimal.Decimal) float64 {
	return lo.Reduce(records, func(total decimal.Decimal, r T, _ int) decimal.Decimal {
		return total.Add(value(r))
	}, decimal.Zero).InexactFloat64()
}

func roundPoints(result domain.AggregationResult) domain.AggregationResult {
	for i := range result.Points {
		result.Points[i].Value = utils.RoundWithTwoDecimalPlace(result.Points[i].Value)
	}
	return result
}

// revenueSeries retorna faturamento, pago e pendente por período
func revenueSeries(w window, invoices []domain.Invoice) (domain.Dataset, domain.AggregationResult, error) {
	revenue := analytics.AggregateDecimalSum(invoices, w.periods, invoiceCreatedAt, invoiceAmount)
	paidInvoices := analytics.FilterRecords(invoices, withStatus(invoiceStatus, domain.InvoiceStatusPaid))
	paid := analytics.AggregateDecimalSum(paidInvoices, w.periods, invoiceCreatedAt, invoiceAmount)

	pending, err := analytics.Subtract(revenue, paid)
	if err != nil {
		return domain.Dataset{}, domain.AggregationResult{}, err
	}

	dataset, err := analytics.Assemble(
		analytics.Series("revenue", revenue),
		analytics.Series("paid", paid),
		analytics.Series("pending", pending),
	)
	if err != nil {
		return domain.Dataset{}, domain.AggregationResult{}, err
	}

	return dataset, revenue, nil
}

func buildRevenueReport(w window, invoices []domain.Invoice) (*domain.RevenueReport, error) {
	trend, revenue, err := revenueSeries(w, invoices)
	if err != nil {
		return nil, err
	}

	statusLabel := w.breakdown(analytics.Humanize)
	totalRevenue := sumAmounts(invoices, invoiceAmount)
	totalPaid := sumAmounts(analytics.FilterRecords(invoices, withStatus(invoiceStatus, domain.InvoiceStatusPaid)), invoiceAmount)

	return &domain.RevenueReport{
		Window:          w.info(),
		Trend:           trend,
		ByStatus:        analytics.Breakdown(invoices, invoiceStatus, statusLabel...),
		AmountByStatus:  analytics.BreakdownSum(invoices, invoiceStatus, invoiceAmount, statusLabel...),
		TotalRevenue:    totalRevenue,
		TotalPaid:       totalPaid,
		Outstanding:     sumAmounts(analytics.FilterRecords(invoices, withStatus(invoiceStatus, domain.InvoiceStatusSent, domain.InvoiceStatusOverdue)), invoiceAmount),
		Overdue:         sumAmounts(analytics.FilterRecords(invoices, withStatus(invoiceStatus, domain.InvoiceStatusOverdue)), invoiceAmount),
		CollectionRate:  analytics.CollectionRate(totalPaid, totalRevenue),
		Growth:          analytics.SeriesGrowth(revenue.Values()),
		ExcludedRecords: analytics.CountMissing(invoices, invoiceCreatedAt),
	}, nil
}

func buildSubscriptionReport(w window, subs []domain.Subscription) (*domain.SubscriptionReport, error) {
	mrr, added, churned := analytics.MRRTrendSeries(analytics.MRRTrend(subs, w.periods))

	trend, err := analytics.Assemble(
		analytics.Series("mrr", mrr),
		analytics.Series("new", added),
		analytics.Series("churned", churned),
	)
	if err != nil {
		return nil, err
	}

	return &domain.SubscriptionReport{
		Window:   w.info(),
		Metrics:  analytics.Snapshot(subs, w.periods, w.reference),
		MRRTrend: trend,
		ByPlan: analytics.Breakdown(subs, func(s domain.Subscription) string {
			return s.PlanName
		}, w.breakdown(nil)...),
		ByStatus: analytics.Breakdown(subs, func(s domain.Subscription) string {
			return s.Status
		}, w.breakdown(analytics.Humanize)...),
		ExcludedRecords: analytics.CountMissing(subs, subscriptionCreatedAt),
	}, nil
}

func buildCustomerReport(w window, customers []domain.Customer) (*domain.CustomerReport, error) {
	added := analytics.AggregateCount(customers, w.periods, customerCreatedAt)

	growth, err := analytics.Assemble(
		analytics.Series("new", added),
		analytics.Series("total", analytics.RunningTotal(added)),
	)
	if err != nil {
		return nil, err
	}

	return &domain.CustomerReport{
		Window:           w.info(),
		Growth:           growth,
		CumulativeByDate: analytics.AggregateCumulativeCount(customers, customerCreatedAt, w.loc),
		ByType: analytics.Breakdown(customers, func(c domain.Customer) string {
			return c.CustomerType
		}, w.breakdown(analytics.Humanize)...),
		ByStatus: analytics.Breakdown(customers, func(c domain.Customer) string {
			return c.Status
		}, w.breakdown(analytics.Humanize)...),
		TotalCustomers:  len(customers),
		ExcludedRecords: analytics.CountMissing(customers, customerCreatedAt),
	}, nil
}

func buildCallReport(w window, calls []domain.Call) (*domain.CallReport, error) {
	count := analytics.AggregateCount(calls, w.periods, callStartTime)
	minutes := roundPoints(analytics.AggregateSum(calls, w.periods, callStartTime, func(c domain.Call) float64 {
		return float64(c.Duration()) / 60
	}))

	volume, err := analytics.Assemble(
		analytics.Series("calls", count),
		analytics.Series("minutes", minutes),
	)
	if err != nil {
		return nil, err
	}

	totalSeconds := lo.SumBy(calls, func(c domain.Call) int64 { return c.Duration() })
	positive := lo.CountBy(calls, func(c domain.Call) bool { return callSentiment(c) == domain.SentimentPositive })

	return &domain.CallReport{
		Window:           w.info(),
		Volume:           volume,
		CumulativeByDate: analytics.AggregateCumulativeCount(calls, callStartTime, w.loc),
		ByType: analytics.Breakdown(calls, func(c domain.Call) string {
			return c.CallType
		}, w.breakdown(callTypeLabel)...),
		ByDirection: analytics.Breakdown(calls, func(c domain.Call) string {
			return c.Direction
		}, w.breakdown(analytics.Humanize)...),
		BySentiment:            analytics.Breakdown(calls, callSentiment, w.breakdown(analytics.Humanize)...),
		TotalCalls:             len(calls),
		AverageDurationSeconds: utils.RoundWithTwoDecimalPlace(analytics.SafeRatio(float64(totalSeconds), float64(len(calls)))),
		PositiveShare:          analytics.Percentage(float64(positive), float64(len(calls))),
		ExcludedRecords:        analytics.CountMissing(calls, callStartTime),
	}, nil
}

func buildPipelineReport(w window, deals []domain.Deal) (*domain.PipelineReport, error) {
	dealStatus := func(d domain.Deal) string { return d.Status }
	stageLabel := w.breakdown(analytics.Humanize)

	won := lo.CountBy(deals, withStatus(dealStatus, domain.DealStatusWon))
	lost := lo.CountBy(deals, withStatus(dealStatus, domain.DealStatusLost))

	return &domain.PipelineReport{
		Window:       w.info(),
		ByStage:      analytics.Breakdown(deals, dealStage, stageLabel...),
		ValueByStage: analytics.BreakdownSum(deals, dealStage, dealAmount, stageLabel...),
		TotalDeals:   len(deals),
		OpenValue:    sumAmounts(analytics.FilterRecords(deals, withStatus(dealStatus, domain.DealStatusOpen)), dealAmount),
		WinRate:      analytics.WinRate(won, lost),
	}, nil
}

func buildOverviewReport(w window, records domain.RecordSet) (*domain.OverviewReport, error) {
	revenue, _, err := revenueSeries(w, records.Invoices)
	if err != nil {
		return nil, err
	}

	totalRevenue := sumAmounts(records.Invoices, invoiceAmount)
	totalPaid := sumAmounts(analytics.FilterRecords(records.Invoices, withStatus(invoiceStatus, domain.InvoiceStatusPaid)), invoiceAmount)

	return &domain.OverviewReport{
		Window:              w.info(),
		TotalRevenue:        totalRevenue,
		TotalPaid:           totalPaid,
		CollectionRate:      analytics.CollectionRate(totalPaid, totalRevenue),
		TotalCustomers:      len(records.Customers),
		TotalCalls:          len(records.Calls),
		MRR:                 analytics.MRR(records.Subscriptions, w.reference),
		ActiveSubscriptions: analytics.ActiveCount(records.Subscriptions, w.reference),
		Revenue:             revenue,
	}, nil
}

// excludedRecords conta os registros sem data que ficaram fora das séries
func excludedRecords(section domain.ReportSection, records domain.RecordSet) int {
	switch section {
	case domain.SectionRevenue:
		return analytics.CountMissing(records.Invoices, invoiceCreatedAt)
	case domain.SectionSubscriptions:
		return analytics.CountMissing(records.Subscriptions, subscriptionCreatedAt)
	case domain.SectionCustomers:
		return analytics.CountMissing(records.Customers, customerCreatedAt)
	case domain.SectionCalls:
		return analytics.CountMissing(records.Calls, callStartTime)
	case domain.SectionOverview:
		return analytics.CountMissing(records.Invoices, invoiceCreatedAt)
	default:
		return 0
	}
}
