package reconciliation

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

type stubSources struct {
	proposals       []models.Proposal
	processorOrders []models.ProcessorOrder
	storeOrders     []models.StoreOrder
	summaries       []models.OrderSummary
	proposalsErr    error
}

func (s *stubSources) WithTx(tx *gorm.DB) SourceRepository { return s }

func (s *stubSources) InvoicedProposals(ctx context.Context, limit int) ([]models.Proposal, error) {
	if s.proposalsErr != nil {
		return nil, s.proposalsErr
	}
	return s.proposals, nil
}

func (s *stubSources) FindProposalByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	for i := range s.proposals {
		if s.proposals[i].ID == id {
			return &s.proposals[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSources) PaidProcessorOrders(ctx context.Context, limit int) ([]models.ProcessorOrder, error) {
	return s.processorOrders, nil
}

func (s *stubSources) PaidStoreOrders(ctx context.Context, limit int) ([]models.StoreOrder, error) {
	return s.storeOrders, nil
}

func (s *stubSources) EnsureOrderSummary(ctx context.Context, summary *models.OrderSummary) error {
	for _, existing := range s.summaries {
		if existing.ProposalID == summary.ProposalID {
			return nil
		}
	}
	s.summaries = append(s.summaries, *summary)
	return nil
}

type memoryInstallments struct {
	rows      []models.Installment
	insertErr error
}

func (m *memoryInstallments) WithTx(tx *gorm.DB) installments.Repository { return m }

func (m *memoryInstallments) BatchInsert(ctx context.Context, rows []models.Installment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memoryInstallments) FindByID(ctx context.Context, id uuid.UUID) (*models.Installment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryInstallments) Update(ctx context.Context, row *models.Installment) error { return nil }

func (m *memoryInstallments) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter installments.ListFilter) ([]models.Installment, error) {
	return nil, nil
}

func (m *memoryInstallments) ListByOrigin(ctx context.Context, origin enums.InstallmentOrigin) ([]models.Installment, error) {
	var out []models.Installment
	for _, row := range m.rows {
		if row.Origin == origin {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryInstallments) ExistsForProposal(ctx context.Context, proposalID uuid.UUID) (bool, error) {
	for _, row := range m.rows {
		if row.ProposalID != nil && *row.ProposalID == proposalID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryInstallments) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	return 0, nil
}

type stubSellers struct {
	percent decimal.Decimal
}

func (s *stubSellers) CommissionPercentFor(ctx context.Context, sellerID uuid.UUID) decimal.Decimal {
	return s.percent
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newTestService(t *testing.T, sources *stubSources, store *memoryInstallments, today string) Service {
	t.Helper()
	clock := fixedClock(today)
	svc, err := NewService(Params{
		Sources:      sources,
		Installments: store,
		Sellers:      &stubSellers{percent: decimal.NewFromInt(5)},
		Planner:      installments.NewPlanner(clock),
		Tx:           passthroughTx{},
		Logger:       logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Now:          clock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func invoicedProposal(t *testing.T, term enums.PaymentTerm, totalCents int, settledOn string) models.Proposal {
	t.Helper()
	invoice := "NF-123"
	settled := mustDate(t, settledOn)
	return models.Proposal{
		ID:            uuid.New(),
		SellerID:      uuid.New(),
		CustomerID:    uuid.New(),
		TotalCents:    totalCents,
		Status:        enums.ProposalStatusInvoiced,
		PaymentTerm:   term,
		InvoiceNumber: &invoice,
		InvoicedAt:    &settled,
	}
}

func TestRunBackfillsInvoicedProposal(t *testing.T) {
	t.Parallel()

	proposal := invoicedProposal(t, enums.PaymentTerm6090, 100_000, "2024-01-01")
	sources := &stubSources{proposals: []models.Proposal{proposal}}
	store := &memoryInstallments{}
	svc := newTestService(t, sources, store, "2024-01-02")

	report := svc.Run(context.Background())

	if report.Processed != 1 || report.Created != 2 || report.Skipped != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(store.rows) != 2 {
		t.Fatalf("expected 2 installments, got %d", len(store.rows))
	}
	for _, row := range store.rows {
		if row.ProposalID == nil || *row.ProposalID != proposal.ID {
			t.Fatalf("installment must reference the proposal, got %v", row.ProposalID)
		}
		if row.Origin != enums.InstallmentOriginInvoiced {
			t.Fatalf("expected origem faturado, got %q", row.Origin)
		}
	}
	if len(sources.summaries) != 1 || sources.summaries[0].ProposalID != proposal.ID {
		t.Fatalf("expected an order summary for the proposal, got %+v", sources.summaries)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	paidAt := mustDate(t, "2024-01-20")
	sources := &stubSources{
		proposals: []models.Proposal{invoicedProposal(t, enums.PaymentTerm30, 50_000, "2024-01-01")},
		processorOrders: []models.ProcessorOrder{{
			ID:          uuid.New(),
			ExternalID:  "MP-1",
			SellerID:    uuid.New(),
			CustomerID:  uuid.New(),
			AmountCents: 30_000,
			Status:      enums.ProcessorOrderStatusPaid,
			PaymentDate: &paidAt,
		}},
		storeOrders: []models.StoreOrder{{
			ID:            uuid.New(),
			SellerID:      uuid.New(),
			CustomerID:    uuid.New(),
			AmountCents:   15_000,
			PaymentStatus: enums.StorePaymentStatusPaid,
			DueDate:       mustDate(t, "2024-01-10"),
		}},
	}
	store := &memoryInstallments{}
	svc := newTestService(t, sources, store, "2024-02-01")

	first := svc.Run(context.Background())
	if first.Created != 3 {
		t.Fatalf("first run should create 3 installments, got %+v", first)
	}

	second := svc.Run(context.Background())
	if second.Created != 0 {
		t.Fatalf("second run must create nothing, got %+v", second)
	}
	if second.Skipped != 3 {
		t.Fatalf("second run should skip every candidate, got %+v", second)
	}
	if len(store.rows) != 3 {
		t.Fatalf("store must still hold 3 installments, got %d", len(store.rows))
	}
}

func TestRunProcessorReleaseSchedule(t *testing.T) {
	t.Parallel()

	paidAt := mustDate(t, "2024-01-20")
	order := models.ProcessorOrder{
		ID:          uuid.New(),
		ExternalID:  "MP-9",
		SellerID:    uuid.New(),
		CustomerID:  uuid.New(),
		AmountCents: 20_000,
		Status:      enums.ProcessorOrderStatusPaid,
		PaymentDate: &paidAt,
	}

	// Run on Feb 1st: before the cutoff, release stays scheduled.
	store := &memoryInstallments{}
	svc := newTestService(t, &stubSources{processorOrders: []models.ProcessorOrder{order}}, store, "2024-02-01")
	svc.Run(context.Background())

	row := store.rows[0]
	if row.Status != enums.InstallmentStatusPaid {
		t.Fatalf("processor installment must be born paga, got %q", row.Status)
	}
	if row.CommissionReleaseStatus == nil || *row.CommissionReleaseStatus != enums.CommissionReleaseScheduled {
		t.Fatalf("expected agendada, got %v", row.CommissionReleaseStatus)
	}
	if row.CommissionReleaseDate == nil || row.CommissionReleaseDate.Format("2006-01-02") != "2024-02-05" {
		t.Fatalf("expected release date 2024-02-05, got %v", row.CommissionReleaseDate)
	}
	// 200.00 at 5% is 10.00
	if row.CommissionAmountCents != 1_000 {
		t.Fatalf("expected commission 1000 cents, got %d", row.CommissionAmountCents)
	}

	// Run on Feb 10th: past the cutoff, release is immediate.
	store = &memoryInstallments{}
	svc = newTestService(t, &stubSources{processorOrders: []models.ProcessorOrder{order}}, store, "2024-02-10")
	svc.Run(context.Background())

	row = store.rows[0]
	if row.CommissionReleaseStatus == nil || *row.CommissionReleaseStatus != enums.CommissionReleaseReleased {
		t.Fatalf("expected liberada, got %v", row.CommissionReleaseStatus)
	}
}

func TestRunIsolatesRowFailures(t *testing.T) {
	t.Parallel()

	good := invoicedProposal(t, enums.PaymentTerm30, 50_000, "2024-01-01")
	bad := invoicedProposal(t, enums.PaymentTerm30, 50_000, "2024-01-01")
	bad.InvoicedAt = nil

	sources := &stubSources{proposals: []models.Proposal{bad, good}}
	store := &memoryInstallments{}
	svc := newTestService(t, sources, store, "2024-01-02")

	report := svc.Run(context.Background())

	if report.Created != 1 {
		t.Fatalf("good row must still settle, got %+v", report)
	}
	if report.ErrorCount() != 1 {
		t.Fatalf("bad row must surface one error, got %d", report.ErrorCount())
	}
	if report.Err() == nil {
		t.Fatal("combined error must not be nil")
	}
}

func TestRunUnknownTermFallsBackToThirtyDays(t *testing.T) {
	t.Parallel()

	proposal := invoicedProposal(t, enums.PaymentTerm("45"), 50_000, "2024-01-01")
	sources := &stubSources{proposals: []models.Proposal{proposal}}
	store := &memoryInstallments{}
	svc := newTestService(t, sources, store, "2024-01-02")

	report := svc.Run(context.Background())

	if report.Created != 1 {
		t.Fatalf("fallback must produce one installment, got %+v", report)
	}
	row := store.rows[0]
	if got := row.DueDate.Format("2006-01-02"); got != "2024-01-31" {
		t.Fatalf("fallback due date must be 30 days out, got %s", got)
	}
}

func TestRunSurfacesSourceFailure(t *testing.T) {
	t.Parallel()

	sources := &stubSources{proposalsErr: fmt.Errorf("connection refused")}
	store := &memoryInstallments{}
	svc := newTestService(t, sources, store, "2024-01-02")

	report := svc.Run(context.Background())

	if report.ErrorCount() == 0 {
		t.Fatal("source failure must be reported")
	}
}

func TestSettleProposalWebhookPath(t *testing.T) {
	t.Parallel()

	proposal := invoicedProposal(t, enums.PaymentTerm6090, 100_000, "2024-01-01")
	sources := &stubSources{proposals: []models.Proposal{proposal}}
	store := &memoryInstallments{}
	svc := newTestService(t, sources, store, "2024-01-02")

	report, err := svc.SettleProposal(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Created != 2 {
		t.Fatalf("expected 2 installments, got %+v", report)
	}

	// Settling again skips without error.
	report, err = svc.SettleProposal(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Created != 0 || report.Skipped != 1 {
		t.Fatalf("repeat settlement must skip, got %+v", report)
	}
}

func TestSettleProposalRejectsOpenProposal(t *testing.T) {
	t.Parallel()

	proposal := invoicedProposal(t, enums.PaymentTerm30, 50_000, "2024-01-01")
	proposal.Status = enums.ProposalStatusOpen
	proposal.InvoiceNumber = nil
	sources := &stubSources{proposals: []models.Proposal{proposal}}
	svc := newTestService(t, sources, &memoryInstallments{}, "2024-01-02")

	_, err := svc.SettleProposal(context.Background(), proposal.ID)
	if err == nil {
		t.Fatal("open proposal must not settle")
	}
}
