package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/business-reports-api/internal/api/handler/router"
	"github.com/vfg2006/business-reports-api/internal/usecases/reporting"
	"github.com/vfg2006/business-reports-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Reports retorna as rotas de consulta, exportação e cálculo dos relatórios
func Reports(service reporting.Reporter, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/:section",
			Method:      http.MethodGet,
			Handler:     GetReport(service, loc),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOrganization()},
		},
		{
			Path:        "/v1/reports/:section/export",
			Method:      http.MethodGet,
			Handler:     ExportReport(service, loc),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOrganization()},
		},
		{
			Path:    "/v1/reports/:section/compute",
			Method:  http.MethodPost,
			Handler: ComputeReport(service, loc),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
