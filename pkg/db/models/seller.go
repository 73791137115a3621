package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seller is a salesperson whose commission percentage feeds installment
// generation.
type Seller struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string          `gorm:"column:nome;not null"`
	Email             string          `gorm:"column:email;not null"`
	CommissionPercent decimal.Decimal `gorm:"column:percentual_comissao;type:numeric(5,2);not null"`
	Active            bool            `gorm:"column:ativo;not null;default:true"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (Seller) TableName() string { return "vendedores" }
