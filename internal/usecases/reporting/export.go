package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/internal/export"
	"github.com/vfg2006/business-reports-api/pkg/log"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

var sectionTitles = map[domain.ReportSection]string{
	domain.SectionOverview:      "Overview Report",
	domain.SectionRevenue:       "Revenue Report",
	domain.SectionSubscriptions: "Subscriptions Report",
	domain.SectionCustomers:     "Customers Report",
	domain.SectionCalls:         "Calls Report",
	domain.SectionPipeline:      "Pipeline Report",
}

// Export gera o arquivo da seção. Sem linhas para exportar retorna export.ErrEmptyInput.
func (s *Service) Export(ctx context.Context, section domain.ReportSection, format export.Format, filters domain.ReportFilters) (*domain.ExportFile, error) {
	now := s.now()

	report, w, err := s.generate(ctx, section, filters, now)
	if err != nil {
		return nil, err
	}

	rows, err := exportRows(report)
	if err != nil {
		return nil, err
	}

	file, err := s.render(ctx, section, format, w, now, rows)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"section": section,
		"format":  format,
		"file":    file.Name,
	}).Info("Relatório exportado")

	return file, nil
}

func (s *Service) render(ctx context.Context, section domain.ReportSection, format export.Format, w window, now time.Time, rows []export.Row) (*domain.ExportFile, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id da exportação")
	}

	file := &domain.ExportFile{
		ID:          id,
		ContentType: format.ContentType(),
	}

	switch format {
	case export.FormatCSV:
		content, err := export.ToCSV(rows)
		if err != nil {
			return nil, err
		}
		file.Name = export.CSVFileName(string(section), now)
		file.Content = []byte(content)
	case export.FormatPDF:
		title := sectionTitles[section]
		content, err := export.ToTabularPDF(ctx, s.renderer, title, w.info().DateRangeLabel(), now, rows)
		if err != nil {
			return nil, err
		}
		file.Name = export.PDFFileName(title, now)
		file.Content = content
	default:
		return nil, errors.Wrapf(export.ErrUnsupportedFormat, "%q", format)
	}

	return file, nil
}

// exportRows escolhe a tabela principal de cada relatório
func exportRows(report any) ([]export.Row, error) {
	switch r := report.(type) {
	case *domain.OverviewReport:
		return export.MetricRows(
			export.F("total_revenue", r.TotalRevenue),
			export.F("total_paid", r.TotalPaid),
			export.F("collection_rate", r.CollectionRate),
			export.F("total_customers", r.TotalCustomers),
			export.F("total_calls", r.TotalCalls),
			export.F("mrr", r.MRR),
			export.F("active_subscriptions", r.ActiveSubscriptions),
		), nil
	case *domain.RevenueReport:
		return export.DatasetRows(r.Trend, "month"), nil
	case *domain.SubscriptionReport:
		return export.DatasetRows(r.MRRTrend, "month"), nil
	case *domain.CustomerReport:
		return export.DatasetRows(r.Growth, "month"), nil
	case *domain.CallReport:
		return export.DatasetRows(r.Volume, "month"), nil
	case *domain.PipelineReport:
		return export.BreakdownRows(r.ByStage, "stage"), nil
	default:
		return nil, errors.Errorf("relatório sem exportação: %T", report)
	}
}
