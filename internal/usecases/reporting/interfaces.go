package reporting

import (
	"context"

	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/internal/export"
)

// Reporter monta os relatórios do painel de uma organização
type Reporter interface {
	// Section busca os registros da organização e monta o relatório da seção
	Section(ctx context.Context, section domain.ReportSection, filters domain.ReportFilters) (any, error)

	// Compute monta o relatório da seção sobre registros recebidos, sem acessar a base
	Compute(ctx context.Context, section domain.ReportSection, filters domain.ReportFilters, payload RecordPayload) (any, error)

	// Export gera o arquivo CSV ou PDF da seção
	Export(ctx context.Context, section domain.ReportSection, format export.Format, filters domain.ReportFilters) (*domain.ExportFile, error)
}
