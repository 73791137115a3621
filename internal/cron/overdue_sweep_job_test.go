package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

type stubSweepRepo struct {
	affected int64
	err      error
	gotDate  time.Time
}

func (s *stubSweepRepo) WithTx(tx *gorm.DB) installments.Repository { return s }

func (s *stubSweepRepo) BatchInsert(ctx context.Context, rows []models.Installment) error {
	return nil
}

func (s *stubSweepRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Installment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSweepRepo) Update(ctx context.Context, row *models.Installment) error { return nil }

func (s *stubSweepRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter installments.ListFilter) ([]models.Installment, error) {
	return nil, nil
}

func (s *stubSweepRepo) ListByOrigin(ctx context.Context, origin enums.InstallmentOrigin) ([]models.Installment, error) {
	return nil, nil
}

func (s *stubSweepRepo) ExistsForProposal(ctx context.Context, proposalID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubSweepRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	s.gotDate = today
	return s.affected, s.err
}

func TestOverdueSweepJobUsesInjectedClock(t *testing.T) {
	repo := &stubSweepRepo{affected: 3}
	today := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	job, err := NewOverdueSweepJob(OverdueSweepJobParams{
		Logger: cronTestLogger(),
		Repo:   repo,
		Now:    func() time.Time { return today },
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !repo.gotDate.Equal(today) {
		t.Fatalf("expected sweep date %s, got %s", today, repo.gotDate)
	}
}

func TestOverdueSweepJobSurfacesRepoError(t *testing.T) {
	repo := &stubSweepRepo{err: errors.New("db down")}
	job, err := NewOverdueSweepJob(OverdueSweepJobParams{
		Logger: cronTestLogger(),
		Repo:   repo,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected the repository error to surface")
	}
}
