package installments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an installments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) BatchInsert(ctx context.Context, rows []models.Installment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Installment, error) {
	var row models.Installment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Update(ctx context.Context, row *models.Installment) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repository) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter ListFilter) ([]models.Installment, error) {
	query := r.db.WithContext(ctx).
		Where("vendedor_id = ?", sellerID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Origin != nil {
		query = query.Where("origem = ?", *filter.Origin)
	}

	var rows []models.Installment
	err := query.
		Order("data_vencimento ASC, numero_parcela ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByOrigin(ctx context.Context, origin enums.InstallmentOrigin) ([]models.Installment, error) {
	var rows []models.Installment
	err := r.db.WithContext(ctx).
		Where("origem = ?", origin).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ExistsForProposal(ctx context.Context, proposalID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("proposta_id = ?", proposalID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("status = ?", enums.InstallmentStatusAwaiting).
		Where("data_vencimento < ?", dateOf(today)).
		Update("status", enums.InstallmentStatusOverdue)
	return result.RowsAffected, result.Error
}
