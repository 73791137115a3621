package controllers

import (
	"net/http"

	"github.com/rafaelmoret/comissoes-backend/api/responses"
	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

type reconciliationRunResponse struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// ReconciliationRun triggers an on-demand backfill pass. Row failures do not
// fail the request; they come back inside the report.
func ReconciliationRun(svc reconciliation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reconciliation service unavailable"))
			return
		}

		report := svc.Run(r.Context())

		responses.WriteSuccess(w, reconciliationRunResponse{
			Processed: report.Processed,
			Created:   report.Created,
			Skipped:   report.Skipped,
			Errors:    report.ErrorMessages(),
		})
	}
}
