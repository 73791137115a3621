package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/internal/sellers"
	"github.com/rafaelmoret/comissoes-backend/pkg/db"
	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
	"github.com/rafaelmoret/comissoes-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service backfills missing installment series across the three settlement
// sources and settles single proposals on demand.
type Service interface {
	Run(ctx context.Context) Report
	SettleProposal(ctx context.Context, proposalID uuid.UUID) (Report, error)
}

// Params carries the service dependencies.
type Params struct {
	Sources      SourceRepository
	Installments installments.Repository
	Sellers      sellers.Service
	Planner      *installments.Planner
	Tx           txRunner
	Logger       *logger.Logger
	Metrics      *metrics.ReconciliationMetrics
	Now          func() time.Time
	BatchLimit   int
}

type service struct {
	sources    SourceRepository
	insts      installments.Repository
	sellers    sellers.Service
	planner    *installments.Planner
	tx         txRunner
	logg       *logger.Logger
	metrics    *metrics.ReconciliationMetrics
	now        func() time.Time
	batchLimit int
}

// NewService builds the reconciliation service.
func NewService(p Params) (Service, error) {
	if p.Sources == nil {
		return nil, fmt.Errorf("source repository required")
	}
	if p.Installments == nil {
		return nil, fmt.Errorf("installments repository required")
	}
	if p.Sellers == nil {
		return nil, fmt.Errorf("sellers service required")
	}
	if p.Planner == nil {
		return nil, fmt.Errorf("planner required")
	}
	if p.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		sources:    p.Sources,
		insts:      p.Installments,
		sellers:    p.Sellers,
		planner:    p.Planner,
		tx:         p.Tx,
		logg:       p.Logger,
		metrics:    p.Metrics,
		now:        p.Now,
		batchLimit: p.BatchLimit,
	}, nil
}

// Run executes the three backfill passes. Row failures are isolated and
// collected; a clean re-run with no new candidates produces zero writes.
func (s *service) Run(ctx context.Context) Report {
	var report Report
	report.merge(s.reconcileInvoiced(ctx))
	report.merge(s.reconcileProcessor(ctx))
	report.merge(s.reconcileStore(ctx))

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"processed": report.Processed,
		"created":   report.Created,
		"skipped":   report.Skipped,
		"errors":    report.ErrorCount(),
	}), "reconciliation run finished")
	return report
}

func (s *service) reconcileInvoiced(ctx context.Context) Report {
	var report Report
	origin := enums.InstallmentOriginInvoiced
	ctx = s.logg.WithOrigin(ctx, origin.String())

	candidates, err := s.sources.InvoicedProposals(ctx, s.batchLimit)
	if err != nil {
		return s.sourceFailure(ctx, &report, origin, fmt.Errorf("load invoiced proposals: %w", err))
	}
	existing, err := s.insts.ListByOrigin(ctx, origin)
	if err != nil {
		return s.sourceFailure(ctx, &report, origin, fmt.Errorf("load existing %s installments: %w", origin, err))
	}
	seen := make(map[uuid.UUID]struct{}, len(existing))
	for _, row := range existing {
		if row.ProposalID != nil {
			seen[*row.ProposalID] = struct{}{}
		}
	}

	var newRows []models.Installment
	var summaries []models.OrderSummary
	for _, proposal := range candidates {
		report.Processed++
		if _, ok := seen[proposal.ID]; ok {
			report.Skipped++
			continue
		}
		if proposal.InvoicedAt == nil {
			report.addError(fmt.Errorf("proposal %s: invoiced without settlement date", proposal.ID))
			continue
		}

		series, err := s.planProposalSeries(ctx, proposal)
		if err != nil {
			report.addError(fmt.Errorf("proposal %s: %w", proposal.ID, err))
			continue
		}
		seen[proposal.ID] = struct{}{}
		newRows = append(newRows, series...)
		summaries = append(summaries, models.OrderSummary{
			ProposalID: proposal.ID,
			SellerID:   proposal.SellerID,
			CustomerID: proposal.CustomerID,
			TotalCents: proposal.TotalCents,
			Origin:     origin,
			SettledAt:  *proposal.InvoicedAt,
		})
	}

	s.flush(ctx, &report, origin, newRows, summaries)
	return report
}

func (s *service) reconcileProcessor(ctx context.Context) Report {
	var report Report
	origin := enums.InstallmentOriginMercadoPago
	ctx = s.logg.WithOrigin(ctx, origin.String())

	candidates, err := s.sources.PaidProcessorOrders(ctx, s.batchLimit)
	if err != nil {
		return s.sourceFailure(ctx, &report, origin, fmt.Errorf("load paid processor orders: %w", err))
	}
	existing, err := s.insts.ListByOrigin(ctx, origin)
	if err != nil {
		return s.sourceFailure(ctx, &report, origin, fmt.Errorf("load existing %s installments: %w", origin, err))
	}
	seen := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		if key := processorKeyOf(row); key != "" {
			seen[key] = struct{}{}
		}
	}

	var newRows []models.Installment
	for _, order := range candidates {
		report.Processed++
		if order.PaymentDate == nil {
			report.addError(fmt.Errorf("processor order %s: paid without payment date", order.ID))
			continue
		}
		key := processorKey(order.CustomerID, order.AmountCents, *order.PaymentDate)
		if _, ok := seen[key]; ok {
			report.Skipped++
			continue
		}
		seen[key] = struct{}{}

		newRows = append(newRows, s.planner.PlanPaid(installments.PlanInput{
			SellerID:          order.SellerID,
			CustomerID:        order.CustomerID,
			Origin:            origin,
			TotalCents:        order.AmountCents,
			CommissionPercent: s.sellers.CommissionPercentFor(ctx, order.SellerID),
			SettlementDate:    *order.PaymentDate,
		}, *order.PaymentDate))
	}

	s.flush(ctx, &report, origin, newRows, nil)
	return report
}

func (s *service) reconcileStore(ctx context.Context) Report {
	var report Report
	origin := enums.InstallmentOriginOnline
	ctx = s.logg.WithOrigin(ctx, origin.String())

	candidates, err := s.sources.PaidStoreOrders(ctx, s.batchLimit)
	if err != nil {
		return s.sourceFailure(ctx, &report, origin, fmt.Errorf("load paid store orders: %w", err))
	}
	existing, err := s.insts.ListByOrigin(ctx, origin)
	if err != nil {
		return s.sourceFailure(ctx, &report, origin, fmt.Errorf("load existing %s installments: %w", origin, err))
	}
	seen := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		seen[storeKeyOf(row)] = struct{}{}
	}

	var newRows []models.Installment
	for _, order := range candidates {
		report.Processed++
		key := storeKey(order.SellerID, order.CustomerID, order.AmountCents, order.DueDate)
		if _, ok := seen[key]; ok {
			report.Skipped++
			continue
		}
		seen[key] = struct{}{}

		// The platform does not expose a payment timestamp, so the order's
		// due date stands in as the settlement moment.
		newRows = append(newRows, s.planner.PlanPaid(installments.PlanInput{
			SellerID:          order.SellerID,
			CustomerID:        order.CustomerID,
			Origin:            origin,
			TotalCents:        order.AmountCents,
			CommissionPercent: s.sellers.CommissionPercentFor(ctx, order.SellerID),
			SettlementDate:    order.DueDate,
		}, order.DueDate))
	}

	s.flush(ctx, &report, origin, newRows, nil)
	return report
}

// SettleProposal is the synchronous settlement path used by the invoicing
// webhook. Reconciliation remains the safety net behind it.
func (s *service) SettleProposal(ctx context.Context, proposalID uuid.UUID) (Report, error) {
	var report Report

	proposal, err := s.sources.FindProposalByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return report, pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return report, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load proposal")
	}
	if proposal.Status != enums.ProposalStatusInvoiced || proposal.InvoiceNumber == nil || proposal.InvoicedAt == nil {
		return report, pkgerrors.New(pkgerrors.CodeStateConflict, "proposal is not invoiced").
			WithDetails(map[string]any{"status": proposal.Status})
	}

	report.Processed++
	exists, err := s.insts.ExistsForProposal(ctx, proposal.ID)
	if err != nil {
		return report, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing installments")
	}
	if exists {
		report.Skipped++
		return report, nil
	}

	series, err := s.planProposalSeries(ctx, *proposal)
	if err != nil {
		return report, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "plan installment series")
	}
	summary := models.OrderSummary{
		ProposalID: proposal.ID,
		SellerID:   proposal.SellerID,
		CustomerID: proposal.CustomerID,
		TotalCents: proposal.TotalCents,
		Origin:     enums.InstallmentOriginInvoiced,
		SettledAt:  *proposal.InvoicedAt,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.insts.WithTx(tx).BatchInsert(ctx, series); err != nil {
			return err
		}
		return s.sources.WithTx(tx).EnsureOrderSummary(ctx, &summary)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Lost the race against a concurrent reconciliation run.
			report.Skipped++
			return report, nil
		}
		return report, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist installment series")
	}

	report.Created += len(series)
	return report, nil
}

// planProposalSeries plans the invoiced series, falling back to the single
// 30-day term when the proposal carries an unknown term code.
func (s *service) planProposalSeries(ctx context.Context, proposal models.Proposal) ([]models.Installment, error) {
	input := installments.PlanInput{
		SellerID:          proposal.SellerID,
		CustomerID:        proposal.CustomerID,
		ProposalID:        &proposal.ID,
		Origin:            enums.InstallmentOriginInvoiced,
		TotalCents:        proposal.TotalCents,
		Term:              proposal.PaymentTerm,
		CommissionPercent: s.sellers.CommissionPercentFor(ctx, proposal.SellerID),
		SettlementDate:    *proposal.InvoicedAt,
	}

	series, err := s.planner.Plan(input)
	if errors.Is(err, installments.ErrInvalidPaymentTerm) {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"proposta_id":        proposal.ID,
			"condicao_pagamento": proposal.PaymentTerm,
		}), "unknown payment term, falling back to single 30-day installment")
		input.Term = enums.PaymentTerm30
		series, err = s.planner.Plan(input)
	}
	return series, err
}

// flush batch-inserts the pass results. The insert is all-or-nothing per
// source; a unique violation means a concurrent run won the race and the
// whole batch is treated as skipped.
func (s *service) flush(ctx context.Context, report *Report, origin enums.InstallmentOrigin, rows []models.Installment, summaries []models.OrderSummary) {
	defer s.observe(origin, report)

	if len(rows) == 0 {
		return
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.insts.WithTx(tx).BatchInsert(ctx, rows); err != nil {
			return err
		}
		src := s.sources.WithTx(tx)
		for i := range summaries {
			if err := src.EnsureOrderSummary(ctx, &summaries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			s.logg.Warn(ctx, "concurrent reconciliation run detected, batch skipped")
			report.Skipped += len(rows)
			return
		}
		report.addError(fmt.Errorf("insert %s batch: %w", origin, err))
		return
	}
	report.Created += len(rows)
}

func (s *service) sourceFailure(ctx context.Context, report *Report, origin enums.InstallmentOrigin, err error) Report {
	s.logg.Error(ctx, "reconciliation source unavailable", err)
	report.addError(err)
	s.observe(origin, report)
	return *report
}

func (s *service) observe(origin enums.InstallmentOrigin, report *Report) {
	if s.metrics == nil {
		return
	}
	s.metrics.AddCreated(origin.String(), report.Created)
	s.metrics.AddSkipped(origin.String(), report.Skipped)
	s.metrics.AddErrors(origin.String(), report.ErrorCount())
}
