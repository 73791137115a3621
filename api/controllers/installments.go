package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/api/responses"
	"github.com/rafaelmoret/comissoes-backend/api/validators"
	installmentsvc "github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type installmentResponse struct {
	ID                    uuid.UUID  `json:"id"`
	SellerID              uuid.UUID  `json:"vendedor_id"`
	CustomerID            uuid.UUID  `json:"cliente_id"`
	ProposalID            *uuid.UUID `json:"proposta_id,omitempty"`
	SequenceNumber        int        `json:"numero_parcela"`
	TotalInSeries         int        `json:"total_parcelas"`
	AmountCents           int        `json:"valor_cents"`
	CommissionAmountCents int        `json:"comissao_cents"`
	DueDate               string     `json:"data_vencimento"`
	PaymentDate           *string    `json:"data_pagamento,omitempty"`
	Status                string     `json:"status"`
	Origin                string     `json:"origem"`
	CommissionStatus      *string    `json:"comissao_status,omitempty"`
	CommissionReleaseDate *string    `json:"data_liberacao,omitempty"`
}

func newInstallmentResponse(row models.Installment) installmentResponse {
	out := installmentResponse{
		ID:                    row.ID,
		SellerID:              row.SellerID,
		CustomerID:            row.CustomerID,
		ProposalID:            row.ProposalID,
		SequenceNumber:        row.SequenceNumber,
		TotalInSeries:         row.TotalInSeries,
		AmountCents:           row.AmountCents,
		CommissionAmountCents: row.CommissionAmountCents,
		DueDate:               row.DueDate.Format(dateLayout),
		Status:                row.Status.String(),
		Origin:                row.Origin.String(),
	}
	if row.PaymentDate != nil {
		formatted := row.PaymentDate.Format(dateLayout)
		out.PaymentDate = &formatted
	}
	if row.CommissionReleaseStatus != nil {
		status := row.CommissionReleaseStatus.String()
		out.CommissionStatus = &status
	}
	if row.CommissionReleaseDate != nil {
		formatted := row.CommissionReleaseDate.Format(dateLayout)
		out.CommissionReleaseDate = &formatted
	}
	return out
}

// SellerInstallments feeds the commission dashboard, filterable by status
// and origin.
func SellerInstallments(svc installmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "installments service unavailable"))
			return
		}

		sellerID, err := uuid.Parse(chi.URLParam(r, "sellerID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id"))
			return
		}

		var filter installmentsvc.ListFilter
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseInstallmentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := r.URL.Query().Get("origem"); raw != "" {
			origin, err := enums.ParseInstallmentOrigin(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid origin filter"))
				return
			}
			filter.Origin = &origin
		}

		rows, err := svc.ListBySeller(r.Context(), sellerID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]installmentResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, newInstallmentResponse(row))
		}
		responses.WriteSuccess(w, out)
	}
}

type payInstallmentRequest struct {
	PaymentDate string `json:"data_pagamento" validate:"required"`
}

// PayInstallment records a payment on an installment.
func PayInstallment(svc installmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "installments service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "installmentID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid installment id"))
			return
		}

		var payload payInstallmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paymentDate, err := time.Parse(dateLayout, payload.PaymentDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment date"))
			return
		}

		row, err := svc.MarkPaid(r.Context(), id, paymentDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newInstallmentResponse(*row))
	}
}
