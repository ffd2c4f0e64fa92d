package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/domain"
)

func testWindow(t *testing.T, count int) window {
	t.Helper()
	periods, err := analytics.GeneratePeriods(count, fixedNow)
	require.NoError(t, err)
	return newWindow(periods, fixedNow)
}

func TestBuildCallReport(t *testing.T) {
	w := testWindow(t, 2)

	calls := []domain.Call{
		{ID: "1", StartTime: ptr(date(2025, 5, 20)), DurationSeconds: ptr(int64(120)), CallType: domain.CallTypeHuman, Direction: domain.CallDirectionInbound},
		{ID: "2", StartTime: ptr(date(2025, 6, 1)), EndTime: ptr(date(2025, 6, 1).Add(90e9)), CallType: domain.CallTypeAIAgent, Direction: domain.CallDirectionOutbound},
		{ID: "3", StartTime: ptr(date(2025, 6, 1)), DurationSeconds: ptr(int64(30)), CallType: domain.CallTypeAIAgent},
		{ID: "4"},
	}

	report, err := buildCallReport(w, calls)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, report.Volume.Series["calls"])
	assert.Equal(t, []float64{2, 2}, report.Volume.Series["minutes"])
	assert.Equal(t, []string{"2025-05-20", "2025-06-01"}, report.CumulativeByDate.Labels())
	assert.Equal(t, []float64{1, 3}, report.CumulativeByDate.Values())
	assert.Equal(t, 4, report.TotalCalls)
	assert.Equal(t, 60.0, report.AverageDurationSeconds)
	assert.Equal(t, 1, report.ExcludedRecords)

	ai, ok := report.ByType.Find("AI Agent")
	require.True(t, ok)
	assert.Equal(t, 2, ai.Count)

	direction, ok := report.ByDirection.Find(analytics.DefaultCategory)
	require.True(t, ok)
	assert.Equal(t, 2, direction.Count)
}

func TestBuildCallReport_NoSentimentCollapsesToDefault(t *testing.T) {
	w := testWindow(t, 1)

	calls := []domain.Call{
		{ID: "1", StartTime: ptr(date(2025, 6, 1))},
		{ID: "2", StartTime: ptr(date(2025, 6, 2))},
		{ID: "3", StartTime: ptr(date(2025, 6, 3))},
	}

	report, err := buildCallReport(w, calls)
	require.NoError(t, err)

	require.Len(t, report.BySentiment.Categories, 1)
	assert.Equal(t, analytics.DefaultCategory, report.BySentiment.Categories[0].Label)
	assert.Equal(t, len(calls), report.BySentiment.Categories[0].Count)
	assert.Equal(t, 0.0, report.PositiveShare)
}

func TestBuildCallReport_Empty(t *testing.T) {
	report, err := buildCallReport(testWindow(t, 3), nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0}, report.Volume.Series["calls"])
	assert.Equal(t, 0.0, report.AverageDurationSeconds)
	assert.Empty(t, report.BySentiment.Categories)
	assert.Empty(t, report.CumulativeByDate.Points)
}

func TestBuildPipelineReport(t *testing.T) {
	deals := []domain.Deal{
		{Stage: "qualified", Value: amount("1000"), Status: domain.DealStatusOpen},
		{Stage: "proposal", Value: amount("2500.50"), Status: domain.DealStatusOpen},
		{Stage: "closed_won", Value: amount("4000"), Status: domain.DealStatusWon},
		{Stage: "closed_lost", Value: amount("800"), Status: domain.DealStatusLost},
		{Stage: "closed_won", Status: domain.DealStatusWon},
		{Status: domain.DealStatusOpen},
	}

	report, err := buildPipelineReport(testWindow(t, 1), deals)
	require.NoError(t, err)

	assert.Equal(t, 6, report.TotalDeals)
	assert.Equal(t, 3500.5, report.OpenValue)
	assert.Equal(t, 66.7, report.WinRate)

	won, ok := report.ValueByStage.Find("Closed won")
	require.True(t, ok)
	assert.Equal(t, 4000.0, won.Value)
	assert.Equal(t, 2, won.Count)

	unknown, ok := report.ByStage.Find(analytics.DefaultCategory)
	require.True(t, ok)
	assert.Equal(t, 1, unknown.Count)
}

func TestBuildRevenueReport_Growth(t *testing.T) {
	invoices := []domain.Invoice{
		{TotalAmount: amount("200"), Status: domain.InvoiceStatusPaid, CreatedAt: ptr(date(2025, 5, 5))},
		{TotalAmount: amount("300"), Status: domain.InvoiceStatusOverdue, CreatedAt: ptr(date(2025, 6, 5))},
	}

	report, err := buildRevenueReport(testWindow(t, 2), invoices)
	require.NoError(t, err)

	assert.Equal(t, 50.0, report.Growth)
	assert.Equal(t, 300.0, report.Overdue)
	assert.Equal(t, 300.0, report.Outstanding)
	assert.Equal(t, 40.0, report.CollectionRate)
}

func TestBuildSubscriptionReport_NoBaseChurnIsZero(t *testing.T) {
	subs := []domain.Subscription{
		{PlanAmount: ptr(int64(1500)), Status: domain.SubscriptionStatusActive, CreatedAt: ptr(date(2025, 6, 3))},
	}

	report, err := buildSubscriptionReport(testWindow(t, 1), subs)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Metrics.ChurnRate)
	assert.Equal(t, 1, report.Metrics.NewThisPeriod)
	assert.Equal(t, 15.0, report.Metrics.MRR)
}
