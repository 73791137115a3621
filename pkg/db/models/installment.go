package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// Installment is one scheduled, commission-bearing portion of a settled
// order's total. Rows are created once at settlement time; the only later
// mutation allowed is the payment-status write path.
type Installment struct {
	ID                      uuid.UUID                      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID                uuid.UUID                      `gorm:"column:vendedor_id;type:uuid;not null"`
	CustomerID              uuid.UUID                      `gorm:"column:cliente_id;type:uuid;not null"`
	ProposalID              *uuid.UUID                     `gorm:"column:proposta_id;type:uuid"`
	SequenceNumber          int                            `gorm:"column:numero_parcela;not null"`
	TotalInSeries           int                            `gorm:"column:total_parcelas;not null"`
	AmountCents             int                            `gorm:"column:valor_cents;not null"`
	CommissionAmountCents   int                            `gorm:"column:comissao_cents;not null"`
	DueDate                 time.Time                      `gorm:"column:data_vencimento;not null"`
	PaymentDate             *time.Time                     `gorm:"column:data_pagamento"`
	Status                  enums.InstallmentStatus        `gorm:"column:status;type:text;not null;default:'aguardando'"`
	Origin                  enums.InstallmentOrigin        `gorm:"column:origem;type:text;not null"`
	CommissionReleaseStatus *enums.CommissionReleaseStatus `gorm:"column:comissao_status;type:text"`
	CommissionReleaseDate   *time.Time                     `gorm:"column:data_liberacao"`
	CreatedAt               time.Time                      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time                      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy reporting table name.
func (Installment) TableName() string { return "parcelas" }
