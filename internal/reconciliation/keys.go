package reconciliation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
)

// The processor and e-commerce sources carry no durable foreign key into the
// installment table, so identity is inferred from a value tuple. The same
// tuples back the partial unique indexes that reject duplicate inserts when
// two runs overlap.

func processorKey(customerID uuid.UUID, amountCents int, paymentDate time.Time) string {
	return fmt.Sprintf("%s|%d|%s", customerID, amountCents, paymentDate.Format("2006-01-02"))
}

func storeKey(sellerID, customerID uuid.UUID, amountCents int, dueDate time.Time) string {
	return fmt.Sprintf("%s|%s|%d|%s", sellerID, customerID, amountCents, dueDate.Format("2006-01-02"))
}

func processorKeyOf(row models.Installment) string {
	if row.PaymentDate == nil {
		return ""
	}
	return processorKey(row.CustomerID, row.AmountCents, *row.PaymentDate)
}

func storeKeyOf(row models.Installment) string {
	return storeKey(row.SellerID, row.CustomerID, row.AmountCents, row.DueDate)
}
