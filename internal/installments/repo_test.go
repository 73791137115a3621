package installments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

func setupInstallmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS parcelas (
  id TEXT PRIMARY KEY,
  vendedor_id TEXT NOT NULL,
  cliente_id TEXT NOT NULL,
  proposta_id TEXT,
  numero_parcela INTEGER NOT NULL,
  total_parcelas INTEGER NOT NULL,
  valor_cents INTEGER NOT NULL,
  comissao_cents INTEGER NOT NULL,
  data_vencimento DATETIME NOT NULL,
  data_pagamento DATETIME,
  status TEXT NOT NULL DEFAULT 'aguardando',
  origem TEXT NOT NULL,
  comissao_status TEXT,
  data_liberacao DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedInstallment(t *testing.T, db *gorm.DB, row models.Installment) models.Installment {
	t.Helper()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestRepositoryBatchInsertAndListBySeller(t *testing.T) {
	db := setupInstallmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	customerID := uuid.New()
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.Installment{
		{
			ID:             uuid.New(),
			SellerID:       sellerID,
			CustomerID:     customerID,
			SequenceNumber: 2,
			TotalInSeries:  2,
			AmountCents:    50_000,
			DueDate:        due.AddDate(0, 0, 30),
			Status:         enums.InstallmentStatusAwaiting,
			Origin:         enums.InstallmentOriginInvoiced,
		},
		{
			ID:             uuid.New(),
			SellerID:       sellerID,
			CustomerID:     customerID,
			SequenceNumber: 1,
			TotalInSeries:  2,
			AmountCents:    50_000,
			DueDate:        due,
			Status:         enums.InstallmentStatusAwaiting,
			Origin:         enums.InstallmentOriginInvoiced,
		},
	}
	require.NoError(t, repo.BatchInsert(ctx, rows))

	// Another seller's row must not leak into the listing.
	seedInstallment(t, db, models.Installment{
		SellerID:       uuid.New(),
		CustomerID:     customerID,
		SequenceNumber: 1,
		TotalInSeries:  1,
		AmountCents:    10_000,
		DueDate:        due,
		Status:         enums.InstallmentStatusAwaiting,
		Origin:         enums.InstallmentOriginOnline,
	})

	listed, err := repo.ListBySeller(ctx, sellerID, ListFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].SequenceNumber)
	assert.Equal(t, 2, listed[1].SequenceNumber)
}

func TestRepositoryListBySellerFilters(t *testing.T) {
	db := setupInstallmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedInstallment(t, db, models.Installment{
		SellerID: sellerID, CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 10_000,
		DueDate: due, Status: enums.InstallmentStatusPaid,
		Origin: enums.InstallmentOriginMercadoPago,
	})
	seedInstallment(t, db, models.Installment{
		SellerID: sellerID, CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 20_000,
		DueDate: due, Status: enums.InstallmentStatusAwaiting,
		Origin: enums.InstallmentOriginInvoiced,
	})

	paid := enums.InstallmentStatusPaid
	listed, err := repo.ListBySeller(ctx, sellerID, ListFilter{Status: &paid})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, enums.InstallmentOriginMercadoPago, listed[0].Origin)

	invoiced := enums.InstallmentOriginInvoiced
	listed, err = repo.ListBySeller(ctx, sellerID, ListFilter{Origin: &invoiced})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 20_000, listed[0].AmountCents)
}

func TestRepositoryMarkOverdue(t *testing.T) {
	db := setupInstallmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	today := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	stale := seedInstallment(t, db, models.Installment{
		SellerID: uuid.New(), CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 10_000,
		DueDate: today.AddDate(0, 0, -10), Status: enums.InstallmentStatusAwaiting,
		Origin: enums.InstallmentOriginInvoiced,
	})
	fresh := seedInstallment(t, db, models.Installment{
		SellerID: uuid.New(), CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 10_000,
		DueDate: today.AddDate(0, 0, 10), Status: enums.InstallmentStatusAwaiting,
		Origin: enums.InstallmentOriginInvoiced,
	})
	paidAt := today.AddDate(0, 0, -5)
	settled := seedInstallment(t, db, models.Installment{
		SellerID: uuid.New(), CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 10_000,
		DueDate: today.AddDate(0, 0, -10), Status: enums.InstallmentStatusPaid,
		PaymentDate: &paidAt,
		Origin:      enums.InstallmentOriginInvoiced,
	})

	affected, err := repo.MarkOverdue(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	reloaded, err := repo.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.InstallmentStatusOverdue, reloaded.Status)

	reloaded, err = repo.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.InstallmentStatusAwaiting, reloaded.Status)

	reloaded, err = repo.FindByID(ctx, settled.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.InstallmentStatusPaid, reloaded.Status)
}

func TestRepositoryListByOrigin(t *testing.T) {
	db := setupInstallmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seedInstallment(t, db, models.Installment{
		SellerID: uuid.New(), CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 10_000,
		DueDate: due, Status: enums.InstallmentStatusPaid,
		Origin: enums.InstallmentOriginMercadoPago,
	})
	seedInstallment(t, db, models.Installment{
		SellerID: uuid.New(), CustomerID: uuid.New(),
		SequenceNumber: 1, TotalInSeries: 1, AmountCents: 20_000,
		DueDate: due, Status: enums.InstallmentStatusAwaiting,
		Origin: enums.InstallmentOriginInvoiced,
	})

	rows, err := repo.ListByOrigin(ctx, enums.InstallmentOriginMercadoPago)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10_000, rows[0].AmountCents)
}
