package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

func fixtureInvoices() []domain.Invoice {
	return []domain.Invoice{
		invoiceAt("100", domain.InvoiceStatusPaid, ptr(date(2025, 6, 2))),
		invoiceAt("200", domain.InvoiceStatusSent, ptr(date(2025, 5, 20))),
		invoiceAt("50.25", domain.InvoiceStatusOverdue, ptr(date(2025, 4, 1))),
		invoiceAt("75", domain.InvoiceStatusPaid, nil),
		invoiceAt("10", domain.InvoiceStatusPaid, ptr(date(2024, 1, 1))),
	}
}

func fixtureSubscriptions() []domain.Subscription {
	return []domain.Subscription{
		subscription("s1", 2000, "active", ptr(date(2025, 4, 10)), nil),
		subscription("s2", 1000, "canceled", ptr(date(2025, 5, 3)), ptr(date(2025, 6, 1))),
		subscription("s3", 4900, "active", ptr(date(2025, 6, 14)), nil),
		subscription("s4", 500, "active", nil, nil),
	}
}

func fixtureCalls() []domain.Call {
	positive, negative := "positive", "negative"
	return []domain.Call{
		{ID: "c1", CallType: "human", Sentiment: &positive, StartTime: ptr(date(2025, 6, 1))},
		{ID: "c2", CallType: "ai_agent", Sentiment: &negative, StartTime: ptr(date(2025, 5, 1))},
		{ID: "c3", CallType: "human", StartTime: ptr(date(2025, 5, 9))},
		{ID: "c4", CallType: "", Sentiment: &positive},
	}
}

type engineOutputs struct {
	Revenue   domain.AggregationResult
	Trend     []domain.MRRTrendPoint
	Snapshot  domain.SubscriptionMetrics
	Sentiment domain.BreakdownResult
	Types     domain.BreakdownResult
	Dataset   domain.Dataset
}

func runEngine(t *testing.T, periods []domain.Period, reference time.Time, invoices []domain.Invoice, subs []domain.Subscription, calls []domain.Call) engineOutputs {
	t.Helper()

	revenue := AggregateSum(invoices, periods, invoiceCreatedAt, invoiceAmountFloat)
	paid := AggregateSum(FilterRecords(invoices, isPaid), periods, invoiceCreatedAt, invoiceAmountFloat)

	dataset, err := Assemble(Series("revenue", revenue), Series("paid", paid))
	require.NoError(t, err)

	return engineOutputs{
		Revenue:   revenue,
		Trend:     MRRTrend(subs, periods),
		Snapshot:  Snapshot(subs, periods, reference),
		Sentiment: Breakdown(calls, callSentiment),
		Types:     Breakdown(calls, callType, WithLabeler(Humanize)),
		Dataset:   dataset,
	}
}

func TestEngine_IdenticalInputsProduceIdenticalOutputs(t *testing.T) {
	reference := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	periods, err := GeneratePeriods(6, reference)
	require.NoError(t, err)

	invoices := fixtureInvoices()
	subs := fixtureSubscriptions()
	calls := fixtureCalls()

	first := runEngine(t, periods, reference, invoices, subs, calls)
	second := runEngine(t, periods, reference, invoices, subs, calls)

	assert.Equal(t, first, second)

	// as entradas não são alteradas
	assert.Equal(t, fixtureInvoices(), invoices)
	assert.Equal(t, fixtureSubscriptions(), subs)
	assert.Equal(t, fixtureCalls(), calls)

	again, err := GeneratePeriods(6, reference)
	require.NoError(t, err)
	assert.Equal(t, again, periods)
}
