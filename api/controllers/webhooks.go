package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/api/responses"
	"github.com/rafaelmoret/comissoes-backend/api/validators"
	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

type invoiceWebhookRequest struct {
	ProposalID uuid.UUID `json:"proposta_id" validate:"required"`
}

type invoiceWebhookResponse struct {
	ProposalID uuid.UUID `json:"proposta_id"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
}

// InvoiceWebhook is the synchronous settlement path: the invoicing system
// calls it when a proposal flips to FATURADO. Re-delivery is harmless; the
// settlement is deduplicated the same way the backfill is.
func InvoiceWebhook(svc reconciliation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reconciliation service unavailable"))
			return
		}

		var payload invoiceWebhookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.SettleProposal(r.Context(), payload.ProposalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoiceWebhookResponse{
			ProposalID: payload.ProposalID,
			Created:    report.Created,
			Skipped:    report.Skipped,
		})
	}
}
