package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/types"
)

type stubReconciliationService struct {
	report reconciliation.Report
	err    error
	gotID  uuid.UUID
}

func (s *stubReconciliationService) Run(ctx context.Context) reconciliation.Report {
	return s.report
}

func (s *stubReconciliationService) SettleProposal(ctx context.Context, proposalID uuid.UUID) (reconciliation.Report, error) {
	s.gotID = proposalID
	return s.report, s.err
}

func TestInvoiceWebhookSettlesProposal(t *testing.T) {
	proposalID := uuid.New()
	stub := &stubReconciliationService{report: reconciliation.Report{Processed: 1, Created: 2}}

	body := `{"proposta_id": "` + proposalID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/faturamento", strings.NewReader(body))
	rec := httptest.NewRecorder()

	InvoiceWebhook(stub, controllersTestLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.gotID != proposalID {
		t.Fatalf("expected proposal %s, settled %s", proposalID, stub.gotID)
	}

	var envelope struct {
		Data invoiceWebhookResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Created != 2 {
		t.Fatalf("expected created 2, got %+v", envelope.Data)
	}
}

func TestInvoiceWebhookRejectsOpenProposal(t *testing.T) {
	stub := &stubReconciliationService{
		err: pkgerrors.New(pkgerrors.CodeStateConflict, "proposal is not invoiced"),
	}

	body := `{"proposta_id": "` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/faturamento", strings.NewReader(body))
	rec := httptest.NewRecorder()

	InvoiceWebhook(stub, controllersTestLogger())(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "STATE_CONFLICT" {
		t.Fatalf("expected STATE_CONFLICT, got %q", envelope.Error.Code)
	}
}

func TestInvoiceWebhookRejectsMissingProposalID(t *testing.T) {
	stub := &stubReconciliationService{}

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/faturamento", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	InvoiceWebhook(stub, controllersTestLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
