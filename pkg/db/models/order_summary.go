package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// OrderSummary is the denormalized reporting row kept alongside the
// installment series of an invoiced proposal.
type OrderSummary struct {
	ID         uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProposalID uuid.UUID               `gorm:"column:proposta_id;type:uuid;not null;uniqueIndex:ux_pedidos_resumo_proposta"`
	SellerID   uuid.UUID               `gorm:"column:vendedor_id;type:uuid;not null"`
	CustomerID uuid.UUID               `gorm:"column:cliente_id;type:uuid;not null"`
	TotalCents int                     `gorm:"column:valor_cents;not null"`
	Origin     enums.InstallmentOrigin `gorm:"column:origem;type:text;not null"`
	SettledAt  time.Time               `gorm:"column:data_faturamento;not null"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the legacy table name.
func (OrderSummary) TableName() string { return "pedidos_resumo" }
