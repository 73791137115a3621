package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// Proposal is a direct-invoicing sale negotiated by a seller. Once invoiced
// (status FATURADO with an external invoice number) it becomes a settlement
// candidate for the installment backfill.
type Proposal struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID      uuid.UUID            `gorm:"column:vendedor_id;type:uuid;not null"`
	CustomerID    uuid.UUID            `gorm:"column:cliente_id;type:uuid;not null"`
	TotalCents    int                  `gorm:"column:valor_cents;not null"`
	Status        enums.ProposalStatus `gorm:"column:status;type:text;not null;default:'EM_ABERTO'"`
	PaymentTerm   enums.PaymentTerm    `gorm:"column:condicao_pagamento;type:text;not null;default:'30'"`
	InvoiceNumber *string              `gorm:"column:nota_fiscal"`
	InvoicedAt    *time.Time           `gorm:"column:data_faturamento"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (Proposal) TableName() string { return "propostas" }
