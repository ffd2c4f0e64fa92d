package middleware

import (
	"net/http"
	"strings"

	"github.com/vfg2006/business-reports-api/pkg/apiErrors"
	"github.com/vfg2006/business-reports-api/pkg/log"
)

// OrganizationHeader identifica a organização dona dos registros consultados
const OrganizationHeader = "X-Organization-ID"

// OrganizationScope guarda a organização do cabeçalho no contexto da requisição
func OrganizationScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			organizationID := strings.TrimSpace(r.Header.Get(OrganizationHeader))
			if organizationID != "" {
				r = r.WithContext(log.WithOrganizationID(r.Context(), organizationID))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOrganization rejeita requisições sem organização no contexto
func RequireOrganization() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.GetOrganizationID(r.Context()) == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingOrganization, "Cabeçalho "+OrganizationHeader+" é obrigatório", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
