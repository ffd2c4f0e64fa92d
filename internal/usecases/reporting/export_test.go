package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-reports-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/internal/export"
	exportmocks "github.com/vfg2006/business-reports-api/internal/export/mocks"
	"go.uber.org/mock/gomock"
)

func TestService_Export_CSV(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.invoices.EXPECT().
		ListByOrganization(gomock.Any(), "org-1").
		Return([]domain.Invoice{
			{TotalAmount: amount("100"), Status: domain.InvoiceStatusPaid, CreatedAt: ptr(date(2025, 6, 2))},
			{TotalAmount: amount("50.5"), Status: domain.InvoiceStatusSent, CreatedAt: ptr(date(2025, 6, 3))},
		}, nil)

	file, err := service.Export(context.Background(), domain.SectionRevenue, export.FormatCSV, domain.ReportFilters{
		OrganizationID: "org-1",
		PeriodCount:    2,
	})
	require.NoError(t, err)

	assert.Len(t, file.ID, 12)
	assert.Equal(t, "revenue_2025-06-15.csv", file.Name)
	assert.Equal(t, export.ContentTypeCSV, file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "month,revenue,paid,pending", lines[0])
	assert.Equal(t, "May 2025,0,0,0", lines[1])
	assert.Equal(t, "Jun 2025,150.5,100,50.5", lines[2])
}

func TestService_Export_PDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := exportmocks.NewMockTableRenderer(ctrl)
	deals := mocks.NewMockDealRepository(ctrl)

	service := NewService(testConfig(), nil, nil, nil, nil, deals, renderer).
		WithClock(func() time.Time { return fixedNow })

	deals.EXPECT().
		ListByOrganization(gomock.Any(), "org-1").
		Return([]domain.Deal{
			{Stage: "proposal", Value: amount("1000"), Status: domain.DealStatusOpen},
		}, nil)

	renderer.EXPECT().
		Render(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc export.TabularDocument) ([]byte, error) {
			assert.Equal(t, "Pipeline Report", doc.Title)
			assert.Equal(t, "2025-01-01 to 2025-06-30", doc.DateRangeLabel)
			assert.True(t, fixedNow.Equal(doc.GeneratedAt))
			assert.Equal(t, []string{"Stage", "Value", "Count", "Color"}, doc.Headers)
			assert.Equal(t, [][]string{{"Proposal", "1", "1", "#3B82F6"}}, doc.Rows)
			return []byte("%PDF-1.3"), nil
		})

	file, err := service.Export(context.Background(), domain.SectionPipeline, export.FormatPDF, domain.ReportFilters{OrganizationID: "org-1"})
	require.NoError(t, err)

	assert.Equal(t, "pipeline_report_2025-06-15.pdf", file.Name)
	assert.Equal(t, export.ContentTypePDF, file.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), file.Content)
}

func TestService_Export_EmptyInput(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.deals.EXPECT().
		ListByOrganization(gomock.Any(), "org-1").
		Return([]domain.Deal{}, nil)

	_, err := service.Export(context.Background(), domain.SectionPipeline, export.FormatCSV, domain.ReportFilters{OrganizationID: "org-1"})
	assert.True(t, errors.Is(err, export.ErrEmptyInput))
}

func TestService_Export_Overview(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.invoices.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return(nil, nil)
	m.subscriptions.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return(nil, nil)
	m.customers.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return([]domain.Customer{{ID: "1"}}, nil)
	m.calls.EXPECT().ListByOrganization(gomock.Any(), "org-1").Return(nil, nil)

	file, err := service.Export(context.Background(), domain.SectionOverview, export.FormatCSV, domain.ReportFilters{OrganizationID: "org-1"})
	require.NoError(t, err)

	content := string(file.Content)
	assert.True(t, strings.HasPrefix(content, "metric,value\n"))
	assert.Contains(t, content, "total_customers,1\n")
	assert.Contains(t, content, "collection_rate,0\n")
}
