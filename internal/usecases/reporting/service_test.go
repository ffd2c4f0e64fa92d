package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-reports-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/config"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func amount(value string) *decimal.Decimal {
	return ptr(decimal.RequireFromString(value))
}

func testConfig() *config.Config {
	return &config.Config{
		Report: config.Report{
			PeriodCount: 6,
			Granularity: "month",
			Timezone:    "UTC",
		},
	}
}

type serviceMocks struct {
	invoices      *mocks.MockInvoiceRepository
	subscriptions *mocks.MockSubscriptionRepository
	customers     *mocks.MockCustomerRepository
	calls         *mocks.MockCallRepository
	deals         *mocks.MockDealRepository
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		invoices:      mocks.NewMockInvoiceRepository(ctrl),
		subscriptions: mocks.NewMockSubscriptionRepository(ctrl),
		customers:     mocks.NewMockCustomerRepository(ctrl),
		calls:         mocks.NewMockCallRepository(ctrl),
		deals:         mocks.NewMockDealRepository(ctrl),
	}

	service := NewService(cfg, m.invoices, m.subscriptions, m.customers, m.calls, m.deals, nil).
		WithClock(func() time.Time { return fixedNow })

	return service, m
}

func TestService_Section_Revenue(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.invoices.EXPECT().
		ListByOrganization(gomock.Any(), "org-1").
		Return([]domain.Invoice{
			{ID: "1", TotalAmount: amount("100"), Status: domain.InvoiceStatusPaid, CreatedAt: ptr(date(2025, 6, 2))},
			{ID: "2", TotalAmount: amount("200"), Status: domain.InvoiceStatusSent, CreatedAt: ptr(date(2025, 6, 3))},
			{ID: "3", TotalAmount: amount("50"), Status: domain.InvoiceStatusSent, CreatedAt: ptr(date(2025, 6, 4))},
			{ID: "4", TotalAmount: amount("10"), Status: domain.InvoiceStatusDraft},
		}, nil)

	result, err := service.Section(context.Background(), domain.SectionRevenue, domain.ReportFilters{OrganizationID: "org-1"})
	require.NoError(t, err)

	report, ok := result.(*domain.RevenueReport)
	require.True(t, ok)

	assert.Equal(t, []string{"01-2025", "02-2025", "03-2025", "04-2025", "05-2025", "06-2025"}, report.Window.Periods)
	assert.Equal(t, []string{"Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025", "May 2025", "Jun 2025"}, report.Window.Labels)
	assert.Equal(t, "2025-01-01 to 2025-06-30", report.Window.DateRangeLabel())
	assert.Equal(t, []string{"revenue", "paid", "pending"}, report.Trend.Order)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 350}, report.Trend.Series["revenue"])
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 100}, report.Trend.Series["paid"])
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 250}, report.Trend.Series["pending"])

	assert.Equal(t, 360.0, report.TotalRevenue)
	assert.Equal(t, 100.0, report.TotalPaid)
	assert.Equal(t, 250.0, report.Outstanding)
	assert.Equal(t, 0.0, report.Overdue)
	assert.Equal(t, 27.8, report.CollectionRate)
	assert.Equal(t, 0.0, report.Growth)
	assert.Equal(t, 1, report.ExcludedRecords)

	sent, ok := report.AmountByStatus.Find("Sent")
	require.True(t, ok)
	assert.Equal(t, 250.0, sent.Value)
	assert.Equal(t, 2, sent.Count)
}

func TestService_Section_StableColors(t *testing.T) {
	tests := []struct {
		name         string
		stableColors bool
		wantOverdue  string
		wantPaid     string
	}{
		{name: "Paleta pela ordem de aparição", stableColors: false, wantOverdue: "#3B82F6", wantPaid: "#10B981"},
		{name: "Cor fixa por categoria", stableColors: true, wantOverdue: "#EF4444", wantPaid: "#10B981"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Report.StableColors = tt.stableColors
			service, m := newTestService(t, cfg)

			m.invoices.EXPECT().
				ListByOrganization(gomock.Any(), "org-1").
				Return([]domain.Invoice{
					{ID: "1", TotalAmount: amount("80"), Status: domain.InvoiceStatusOverdue, CreatedAt: ptr(date(2025, 5, 2))},
					{ID: "2", TotalAmount: amount("20"), Status: domain.InvoiceStatusPaid, CreatedAt: ptr(date(2025, 6, 2))},
				}, nil)

			result, err := service.Section(context.Background(), domain.SectionRevenue, domain.ReportFilters{OrganizationID: "org-1"})
			require.NoError(t, err)

			report := result.(*domain.RevenueReport)

			overdue, ok := report.ByStatus.Find("Overdue")
			require.True(t, ok)
			assert.Equal(t, tt.wantOverdue, overdue.Color)

			paid, ok := report.ByStatus.Find("Paid")
			require.True(t, ok)
			assert.Equal(t, tt.wantPaid, paid.Color)
		})
	}
}

func TestService_Section_Subscriptions(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.subscriptions.EXPECT().
		ListByOrganization(gomock.Any(), "org-1").
		Return([]domain.Subscription{
			{ID: "1", PlanName: "Pro", PlanAmount: ptr(int64(2000)), Status: domain.SubscriptionStatusActive, CreatedAt: ptr(date(2025, 4, 15))},
			{ID: "2", PlanAmount: ptr(int64(1000)), Status: domain.SubscriptionStatusCanceled, CreatedAt: ptr(date(2025, 5, 15)), CanceledAt: ptr(date(2025, 6, 5))},
		}, nil)

	result, err := service.Section(context.Background(), domain.SectionSubscriptions, domain.ReportFilters{
		OrganizationID: "org-1",
		PeriodCount:    3,
	})
	require.NoError(t, err)

	report := result.(*domain.SubscriptionReport)
	assert.Equal(t, domain.SubscriptionMetrics{
		MRR:               20,
		ARR:               240,
		ARPU:              20,
		ActiveCount:       1,
		NewThisPeriod:     0,
		ChurnedThisPeriod: 1,
		ChurnRate:         50,
	}, report.Metrics)

	assert.Equal(t, []string{"Apr 2025", "May 2025", "Jun 2025"}, report.MRRTrend.Labels)
	assert.Equal(t, []float64{20, 30, 30}, report.MRRTrend.Series["mrr"])
	assert.Equal(t, []float64{0, 0, 1}, report.MRRTrend.Series["churned"])

	require.Len(t, report.ByPlan.Categories, 2)
	assert.Equal(t, "Pro", report.ByPlan.Categories[0].Label)
	assert.Equal(t, analytics.DefaultCategory, report.ByPlan.Categories[1].Label)
}

func TestService_Section_Errors(t *testing.T) {
	tests := []struct {
		name    string
		section domain.ReportSection
		filters domain.ReportFilters
		setup   func(m serviceMocks)
		wantErr error
	}{
		{
			name:    "Seção inválida",
			section: "sales",
			filters: domain.ReportFilters{OrganizationID: "org-1"},
			wantErr: ErrInvalidSection,
		},
		{
			name:    "Sem organização",
			section: domain.SectionRevenue,
			filters: domain.ReportFilters{},
			wantErr: ErrMissingOrganization,
		},
		{
			name:    "Granularidade não suportada",
			section: domain.SectionRevenue,
			filters: domain.ReportFilters{OrganizationID: "org-1", Granularity: "week"},
			wantErr: analytics.ErrUnsupportedGranularity,
		},
		{
			name:    "Quantidade de períodos inválida",
			section: domain.SectionRevenue,
			filters: domain.ReportFilters{OrganizationID: "org-1", PeriodCount: -1},
			wantErr: analytics.ErrInvalidPeriodCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t, testConfig())
			if tt.setup != nil {
				tt.setup(m)
			}

			_, err := service.Section(context.Background(), tt.section, tt.filters)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}
}

func TestService_Section_RepositoryError(t *testing.T) {
	service, m := newTestService(t, testConfig())
	dbErr := errors.New("connection refused")

	m.calls.EXPECT().
		ListByOrganization(gomock.Any(), "org-1").
		Return(nil, dbErr)

	_, err := service.Section(context.Background(), domain.SectionCalls, domain.ReportFilters{OrganizationID: "org-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbErr))
	assert.Contains(t, err.Error(), "erro ao carregar calls")
}

func TestService_Section_Overview(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.invoices.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return([]domain.Invoice{
		{TotalAmount: amount("300"), Status: domain.InvoiceStatusPaid, CreatedAt: ptr(date(2025, 5, 10))},
		{TotalAmount: amount("100"), Status: domain.InvoiceStatusOverdue, CreatedAt: ptr(date(2025, 6, 10))},
	}, nil)
	m.subscriptions.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return([]domain.Subscription{
		{PlanAmount: ptr(int64(4999)), Status: domain.SubscriptionStatusActive, CreatedAt: ptr(date(2025, 1, 1))},
	}, nil)
	m.customers.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return([]domain.Customer{{ID: "c1"}, {ID: "c2"}}, nil)
	m.calls.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return([]domain.Call{{ID: "call-1"}}, nil)

	result, err := service.Section(context.Background(), domain.SectionOverview, domain.ReportFilters{OrganizationID: "org-1"})
	require.NoError(t, err)

	report := result.(*domain.OverviewReport)
	assert.Equal(t, 400.0, report.TotalRevenue)
	assert.Equal(t, 300.0, report.TotalPaid)
	assert.Equal(t, 75.0, report.CollectionRate)
	assert.Equal(t, 2, report.TotalCustomers)
	assert.Equal(t, 1, report.TotalCalls)
	assert.Equal(t, 49.99, report.MRR)
	assert.Equal(t, 1, report.ActiveSubscriptions)
	assert.Equal(t, []float64{0, 0, 0, 0, 300, 100}, report.Revenue.Series["revenue"])
}

func TestService_ResolveWindow(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name          string
		report        config.Report
		filters       domain.ReportFilters
		wantReference time.Time
		wantFirst     string
		wantLast      string
	}{
		{
			name:          "Usa o relógio quando nada é informado",
			report:        config.Report{PeriodCount: 6, Granularity: "month", Timezone: "UTC"},
			wantReference: fixedNow,
			wantFirst:     "01-2025",
			wantLast:      "06-2025",
		},
		{
			name:          "Referência fixa da configuração",
			report:        config.Report{PeriodCount: 6, Granularity: "month", Timezone: "UTC", ReferenceInstant: "2025-03-31"},
			wantReference: time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC),
			wantFirst:     "10-2024",
			wantLast:      "03-2025",
		},
		{
			name:   "Filtro da requisição tem prioridade",
			report: config.Report{PeriodCount: 6, Granularity: "month", Timezone: "UTC", ReferenceInstant: "2025-03-31"},
			filters: domain.ReportFilters{
				PeriodCount: 2,
				Reference:   ptr(date(2024, 12, 20)),
			},
			wantReference: date(2024, 12, 20),
			wantFirst:     "11-2024",
			wantLast:      "12-2024",
		},
		{
			name:          "Converte a referência para o fuso configurado",
			report:        config.Report{PeriodCount: 1, Granularity: "month", Timezone: "America/Sao_Paulo"},
			filters:       domain.ReportFilters{Reference: ptr(time.Date(2025, 7, 1, 1, 0, 0, 0, time.UTC))},
			wantReference: time.Date(2025, 6, 30, 22, 0, 0, 0, saoPaulo),
			wantFirst:     "06-2025",
			wantLast:      "06-2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t, &config.Config{Report: tt.report})

			w, err := service.resolveWindow(tt.filters, fixedNow)
			require.NoError(t, err)

			assert.True(t, tt.wantReference.Equal(w.reference), w.reference.String())
			keys := w.info().Periods
			assert.Equal(t, tt.wantFirst, keys[0])
			assert.Equal(t, tt.wantLast, keys[len(keys)-1])
		})
	}
}

func TestService_Compute(t *testing.T) {
	service, _ := newTestService(t, testConfig())

	payload := RecordPayload{
		Customers: []CustomerPayload{
			{ID: "1", CustomerType: "business", CreatedAt: "2025-05-10"},
			{ID: "2", CustomerType: "personal", CreatedAt: "2025-06-01T10:00:00Z"},
			{ID: "3", CustomerType: "personal", CreatedAt: "not-a-date"},
			{ID: "4", CreatedAt: ""},
		},
	}

	result, err := service.Compute(context.Background(), domain.SectionCustomers, domain.ReportFilters{OrganizationID: "org-1"}, payload)
	require.NoError(t, err)

	report := result.(*domain.CustomerReport)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 1}, report.Growth.Series["new"])
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 2}, report.Growth.Series["total"])
	assert.Equal(t, []string{"2025-05-10", "2025-06-01"}, report.CumulativeByDate.Labels())
	assert.Equal(t, []float64{1, 2}, report.CumulativeByDate.Values())
	assert.Equal(t, 4, report.TotalCustomers)
	assert.Equal(t, 2, report.ExcludedRecords)

	unknown, ok := report.ByType.Find(analytics.DefaultCategory)
	require.True(t, ok)
	assert.Equal(t, 1, unknown.Count)
}

func TestService_Compute_InvalidSection(t *testing.T) {
	service, _ := newTestService(t, testConfig())

	_, err := service.Compute(context.Background(), "sales", domain.ReportFilters{}, RecordPayload{})
	assert.True(t, errors.Is(err, ErrInvalidSection))
}

func TestRecordPayload_Records(t *testing.T) {
	payload := RecordPayload{
		Invoices: []InvoicePayload{
			{ID: "1", TotalAmount: amount("10.5"), Status: "paid", CreatedAt: "2025-02-01 10:00:00"},
			{ID: "2", CreatedAt: "31/02/2025"},
		},
		Subscriptions: []SubscriptionPayload{
			{ID: "s1", PlanAmount: ptr(int64(990)), CreatedAt: "2025-01-01T00:00:00Z", CanceledAt: ""},
		},
	}

	records, invalid := payload.Records("org-1", time.UTC)
	assert.Equal(t, 1, invalid)
	require.Len(t, records.Invoices, 2)
	assert.Equal(t, "org-1", records.Invoices[0].OrganizationID)
	require.NotNil(t, records.Invoices[0].CreatedAt)
	assert.True(t, date(2025, 2, 1).Add(10*time.Hour).Equal(*records.Invoices[0].CreatedAt))
	assert.Nil(t, records.Invoices[1].CreatedAt)
	require.Len(t, records.Subscriptions, 1)
	assert.Nil(t, records.Subscriptions[0].CanceledAt)
	assert.Equal(t, int64(990), records.Subscriptions[0].AmountMinorUnits())
}
