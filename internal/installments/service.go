package installments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the installment write-path service.
func NewService(repo Repository, logg *logger.Logger, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("installments repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, logg: logg, now: now}, nil
}

// MarkPaid records a payment on an awaiting or overdue installment and stamps
// the commission release. Paid is terminal, so a repeated call conflicts
// instead of moving the payment date.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID, paymentDate time.Time) (*models.Installment, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "installment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load installment")
	}

	if row.Status == enums.InstallmentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "installment already paid").
			WithDetails(map[string]any{"id": row.ID, "data_pagamento": row.PaymentDate})
	}

	releaseStatus, releaseDate := ReleaseFor(paymentDate, s.now())

	row.Status = enums.InstallmentStatusPaid
	row.PaymentDate = &paymentDate
	row.CommissionReleaseStatus = &releaseStatus
	row.CommissionReleaseDate = &releaseDate

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist installment payment")
	}

	ctx = s.logg.WithSellerID(ctx, row.SellerID.String())
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"parcela_id":      row.ID,
		"comissao_status": releaseStatus,
		"data_liberacao":  releaseDate.Format("2006-01-02"),
	}), "installment marked paid")

	return row, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter ListFilter) ([]models.Installment, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list seller installments")
	}
	return rows, nil
}
