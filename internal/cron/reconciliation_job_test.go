package cron

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
)

type stubReconciliation struct {
	report reconciliation.Report
	runs   int
}

func (s *stubReconciliation) Run(ctx context.Context) reconciliation.Report {
	s.runs++
	return s.report
}

func (s *stubReconciliation) SettleProposal(ctx context.Context, proposalID uuid.UUID) (reconciliation.Report, error) {
	return reconciliation.Report{}, nil
}

func TestReconciliationJobCleanRun(t *testing.T) {
	stub := &stubReconciliation{report: reconciliation.Report{Processed: 4, Created: 2, Skipped: 2}}
	job, err := NewReconciliationJob(ReconciliationJobParams{
		Logger:  cronTestLogger(),
		Service: stub,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stub.runs != 1 {
		t.Fatalf("expected one run, got %d", stub.runs)
	}
}
