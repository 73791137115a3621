package installments

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

type stubInstallmentsRepo struct {
	row     *models.Installment
	updated *models.Installment
	findErr error
}

func (s *stubInstallmentsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubInstallmentsRepo) BatchInsert(ctx context.Context, rows []models.Installment) error {
	return nil
}

func (s *stubInstallmentsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Installment, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.row == nil || s.row.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.row
	return &copied, nil
}

func (s *stubInstallmentsRepo) Update(ctx context.Context, row *models.Installment) error {
	s.updated = row
	return nil
}

func (s *stubInstallmentsRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter ListFilter) ([]models.Installment, error) {
	return nil, nil
}

func (s *stubInstallmentsRepo) ListByOrigin(ctx context.Context, origin enums.InstallmentOrigin) ([]models.Installment, error) {
	return nil, nil
}

func (s *stubInstallmentsRepo) ExistsForProposal(ctx context.Context, proposalID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubInstallmentsRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestMarkPaidStampsScheduledRelease(t *testing.T) {
	t.Parallel()

	row := &models.Installment{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Status:   enums.InstallmentStatusAwaiting,
	}
	repo := &stubInstallmentsRepo{row: row}
	svc, err := NewService(repo, testLogger(), fixedClock("2024-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid, err := svc.MarkPaid(context.Background(), row.ID, mustDate(t, "2024-01-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if paid.Status != enums.InstallmentStatusPaid {
		t.Fatalf("expected paga, got %q", paid.Status)
	}
	if paid.CommissionReleaseStatus == nil || *paid.CommissionReleaseStatus != enums.CommissionReleaseScheduled {
		t.Fatalf("expected agendada release, got %v", paid.CommissionReleaseStatus)
	}
	if paid.CommissionReleaseDate == nil || paid.CommissionReleaseDate.Format("2006-01-02") != "2024-02-05" {
		t.Fatalf("expected release date 2024-02-05, got %v", paid.CommissionReleaseDate)
	}
	if repo.updated == nil {
		t.Fatal("expected the row to be persisted")
	}
}

func TestMarkPaidReleasesImmediatelyPastCutoff(t *testing.T) {
	t.Parallel()

	row := &models.Installment{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Status:   enums.InstallmentStatusOverdue,
	}
	repo := &stubInstallmentsRepo{row: row}
	svc, err := NewService(repo, testLogger(), fixedClock("2024-03-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid, err := svc.MarkPaid(context.Background(), row.ID, mustDate(t, "2024-01-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.CommissionReleaseStatus == nil || *paid.CommissionReleaseStatus != enums.CommissionReleaseReleased {
		t.Fatalf("expected liberada, got %v", paid.CommissionReleaseStatus)
	}
}

func TestMarkPaidRejectsRepeatedPayment(t *testing.T) {
	t.Parallel()

	paidAt := mustDate(t, "2024-01-10")
	row := &models.Installment{
		ID:          uuid.New(),
		Status:      enums.InstallmentStatusPaid,
		PaymentDate: &paidAt,
	}
	repo := &stubInstallmentsRepo{row: row}
	svc, err := NewService(repo, testLogger(), fixedClock("2024-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.MarkPaid(context.Background(), row.ID, mustDate(t, "2024-01-15"))

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("a conflicting payment must not write")
	}
}

func TestMarkPaidUnknownInstallment(t *testing.T) {
	t.Parallel()

	repo := &stubInstallmentsRepo{}
	svc, err := NewService(repo, testLogger(), fixedClock("2024-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.MarkPaid(context.Background(), uuid.New(), mustDate(t, "2024-01-15"))

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
