package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// ProcessorOrder is a payment synced from Mercado Pago. There is no durable
// foreign key from these rows into the installment table; identity during
// reconciliation is inferred from (cliente_id, valor_cents, data_pagamento).
type ProcessorOrder struct {
	ID          uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalID  string                     `gorm:"column:mercadopago_id;not null"`
	SellerID    uuid.UUID                  `gorm:"column:vendedor_id;type:uuid;not null"`
	CustomerID  uuid.UUID                  `gorm:"column:cliente_id;type:uuid;not null"`
	AmountCents int                        `gorm:"column:valor_cents;not null"`
	Status      enums.ProcessorOrderStatus `gorm:"column:status;type:text;not null;default:'PENDENTE'"`
	PaymentDate *time.Time                 `gorm:"column:data_pagamento"`
	CreatedAt   time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (ProcessorOrder) TableName() string { return "pedidos_mercadopago" }
