package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/internal/export"
	"github.com/vfg2006/business-reports-api/internal/usecases/reporting"
	"github.com/vfg2006/business-reports-api/pkg/apiErrors"
	"github.com/vfg2006/business-reports-api/pkg/log"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxComputeBody limita o corpo aceito pelo cálculo sobre registros enviados
const maxComputeBody = 10 << 20

// GetReport retorna o relatório de uma seção para a organização do cabeçalho
func GetReport(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := sectionParam(r)

		filters, ok := parseFilters(w, r, loc)
		if !ok {
			return
		}

		report, err := service.Section(r.Context(), section, filters)
		if err != nil {
			writeReportError(w, r, "reports", err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// ExportReport gera o arquivo CSV ou PDF de uma seção
func ExportReport(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := sectionParam(r)

		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedExportFormat, "Formato de exportação inválido. Valores aceitos: csv, pdf", nil)
			return
		}

		filters, ok := parseFilters(w, r, loc)
		if !ok {
			return
		}

		file, err := service.Export(r.Context(), section, format, filters)
		if errors.Is(err, export.ErrEmptyInput) {
			writeJSON(w, http.StatusOK, map[string]any{
				"exported": false,
				"message":  export.ErrEmptyInput.Error(),
			})
			return
		}
		if err != nil {
			writeReportError(w, r, "export", err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("X-Export-ID", file.ID)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao enviar arquivo")
		}
	}
}

// ComputeReport monta o relatório de uma seção sobre registros enviados no corpo
func ComputeReport(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := sectionParam(r)

		filters, ok := parseFilters(w, r, loc)
		if !ok {
			return
		}

		var payload reporting.RecordPayload
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxComputeBody)).Decode(&payload); err != nil {
			logrus.WithError(err).Warn("compute: corpo inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		report, err := service.Compute(r.Context(), section, filters, payload)
		if err != nil {
			writeReportError(w, r, "compute", err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func sectionParam(r *http.Request) domain.ReportSection {
	section := httprouter.ParamsFromContext(r.Context()).ByName("section")
	return domain.ReportSection(strings.ToLower(section))
}

// parseFilters lê periods, reference e granularity da query string.
// Em caso de erro a resposta já foi escrita.
func parseFilters(w http.ResponseWriter, r *http.Request, loc *time.Location) (domain.ReportFilters, bool) {
	query := r.URL.Query()
	filters := domain.ReportFilters{
		OrganizationID: log.GetOrganizationID(r.Context()),
		Granularity:    query.Get("granularity"),
	}

	if value := query.Get("periods"); value != "" {
		count, err := strconv.Atoi(value)
		if err != nil || count < 1 || count > analytics.MaxPeriodCount {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriodCount,
				fmt.Sprintf("periods deve ser um inteiro entre 1 e %d", analytics.MaxPeriodCount),
				map[string]string{"periods": value})
			return domain.ReportFilters{}, false
		}
		filters.PeriodCount = count
	}

	reference, ok := utils.ParseReference(query.Get("reference"), loc)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "reference deve ser uma data (YYYY-MM-DD) ou RFC3339", map[string]string{"reference": query.Get("reference")})
		return domain.ReportFilters{}, false
	}
	filters.Reference = reference

	return filters, true
}

func writeReportError(w http.ResponseWriter, r *http.Request, component string, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	switch {
	case errors.Is(err, reporting.ErrInvalidSection):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSection, "Seção de relatório inexistente", map[string]any{"sections": domain.ReportSections})
	case errors.Is(err, reporting.ErrMissingOrganization):
		apiErrors.WriteError(w, apiErrors.ErrMissingOrganization, "Organização não informada", nil)
	default:
		code := apiErrors.CodeFor(err)
		if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
			logger.Error(component + ": erro ao montar relatório")
			apiErrors.WriteError(w, code, "Erro ao montar relatório", nil)
			return
		}
		logger.Warn(component + ": filtros inválidos")
		apiErrors.WriteError(w, code, err.Error(), nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("handler: erro ao enviar resposta")
	}
}
