package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// StoreOrder is a paid checkout synced from the e-commerce platform.
// Reconciliation identity is inferred from (vendedor_id, cliente_id,
// valor_cents, data_vencimento).
type StoreOrder struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID      uuid.UUID                `gorm:"column:vendedor_id;type:uuid;not null"`
	CustomerID    uuid.UUID                `gorm:"column:cliente_id;type:uuid;not null"`
	AmountCents   int                      `gorm:"column:valor_cents;not null"`
	PaymentStatus enums.StorePaymentStatus `gorm:"column:status_pagamento;type:text;not null;default:'pending'"`
	DueDate       time.Time                `gorm:"column:data_vencimento;not null"`
	CanceledAt    *time.Time               `gorm:"column:cancelado_em"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (StoreOrder) TableName() string { return "pedidos_online" }
