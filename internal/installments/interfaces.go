package installments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// ListFilter narrows seller installment listings.
type ListFilter struct {
	Status *enums.InstallmentStatus
	Origin *enums.InstallmentOrigin
}

// Repository persists installment rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BatchInsert(ctx context.Context, rows []models.Installment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Installment, error)
	Update(ctx context.Context, row *models.Installment) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID, filter ListFilter) ([]models.Installment, error)
	ListByOrigin(ctx context.Context, origin enums.InstallmentOrigin) ([]models.Installment, error)
	ExistsForProposal(ctx context.Context, proposalID uuid.UUID) (bool, error)
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}

// Service exposes installment operations beyond repository reads.
type Service interface {
	MarkPaid(ctx context.Context, id uuid.UUID, paymentDate time.Time) (*models.Installment, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, filter ListFilter) ([]models.Installment, error)
}
