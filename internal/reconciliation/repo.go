package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// SourceRepository reads settlement candidates from the three order sources
// and maintains the denormalized summary rows. Sources are never mutated.
// Candidate queries exclude rows that already produced installments, so the
// batch limit always covers unreconciled work.
type SourceRepository interface {
	WithTx(tx *gorm.DB) SourceRepository
	InvoicedProposals(ctx context.Context, limit int) ([]models.Proposal, error)
	FindProposalByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	PaidProcessorOrders(ctx context.Context, limit int) ([]models.ProcessorOrder, error)
	PaidStoreOrders(ctx context.Context, limit int) ([]models.StoreOrder, error)
	EnsureOrderSummary(ctx context.Context, summary *models.OrderSummary) error
}

type sourceRepository struct {
	db *gorm.DB
}

// NewSourceRepository builds the settlement-source repository.
func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) WithTx(tx *gorm.DB) SourceRepository {
	if tx == nil {
		return r
	}
	return &sourceRepository{db: tx}
}

func (r *sourceRepository) InvoicedProposals(ctx context.Context, limit int) ([]models.Proposal, error) {
	var rows []models.Proposal
	query := r.db.WithContext(ctx).
		Where("status = ?", enums.ProposalStatusInvoiced).
		Where("nota_fiscal IS NOT NULL").
		Where("data_faturamento IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM parcelas WHERE parcelas.proposta_id = propostas.id)").
		Order("data_faturamento ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sourceRepository) FindProposalByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var row models.Proposal
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *sourceRepository) PaidProcessorOrders(ctx context.Context, limit int) ([]models.ProcessorOrder, error) {
	var rows []models.ProcessorOrder
	query := r.db.WithContext(ctx).
		Where("status = ?", enums.ProcessorOrderStatusPaid).
		Where("data_pagamento IS NOT NULL").
		Where(`NOT EXISTS (
			SELECT 1 FROM parcelas
			WHERE parcelas.origem = ?
			  AND parcelas.cliente_id = pedidos_mercadopago.cliente_id
			  AND parcelas.valor_cents = pedidos_mercadopago.valor_cents
			  AND parcelas.data_pagamento = pedidos_mercadopago.data_pagamento
		)`, enums.InstallmentOriginMercadoPago).
		Order("data_pagamento ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sourceRepository) PaidStoreOrders(ctx context.Context, limit int) ([]models.StoreOrder, error) {
	var rows []models.StoreOrder
	query := r.db.WithContext(ctx).
		Where("status_pagamento = ?", enums.StorePaymentStatusPaid).
		Where("cancelado_em IS NULL").
		Where(`NOT EXISTS (
			SELECT 1 FROM parcelas
			WHERE parcelas.origem = ?
			  AND parcelas.vendedor_id = pedidos_online.vendedor_id
			  AND parcelas.cliente_id = pedidos_online.cliente_id
			  AND parcelas.valor_cents = pedidos_online.valor_cents
			  AND parcelas.data_vencimento = pedidos_online.data_vencimento
		)`, enums.InstallmentOriginOnline).
		Order("data_vencimento ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// EnsureOrderSummary inserts the reporting row if it does not exist yet.
// Conflicts on proposta_id are ignored so re-runs stay idempotent.
func (r *sourceRepository) EnsureOrderSummary(ctx context.Context, summary *models.OrderSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "proposta_id"}},
			DoNothing: true,
		}).
		Create(summary).Error
}
