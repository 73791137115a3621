package installments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelmoret/comissoes-backend/pkg/db/models"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// PlanInput describes one settled order to split into installments.
type PlanInput struct {
	SellerID          uuid.UUID
	CustomerID        uuid.UUID
	ProposalID        *uuid.UUID
	Origin            enums.InstallmentOrigin
	TotalCents        int
	Term              enums.PaymentTerm
	CommissionPercent decimal.Decimal
	SettlementDate    time.Time
}

// Planner splits an order total into dated, commission-bearing installments.
// It only schedules future obligations; callers settle already-paid sources
// by overriding status and payment date on the result.
type Planner struct {
	now func() time.Time
}

// NewPlanner builds a planner. A nil clock defaults to time.Now.
func NewPlanner(now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{now: now}
}

// Plan produces the ordered installment series for the input. The split is
// integer-cent exact: base = total/N and the remainder lands entirely on the
// last installment, so the series always sums back to the total.
func (p *Planner) Plan(input PlanInput) ([]models.Installment, error) {
	if input.TotalCents < 0 {
		return nil, fmt.Errorf("total must not be negative, got %d cents", input.TotalCents)
	}

	offsets, err := Offsets(input.Term)
	if err != nil {
		return nil, err
	}

	n := len(offsets)
	base := input.TotalCents / n
	remainder := input.TotalCents % n
	today := dateOf(p.now())

	series := make([]models.Installment, 0, n)
	for i, offset := range offsets {
		amount := base
		if i == n-1 {
			amount += remainder
		}

		due := input.SettlementDate.AddDate(0, 0, offset)
		status := enums.InstallmentStatusAwaiting
		if dateOf(due).Before(today) {
			status = enums.InstallmentStatusOverdue
		}

		series = append(series, models.Installment{
			SellerID:              input.SellerID,
			CustomerID:            input.CustomerID,
			ProposalID:            input.ProposalID,
			SequenceNumber:        i + 1,
			TotalInSeries:         n,
			AmountCents:           amount,
			CommissionAmountCents: commissionCents(amount, input.CommissionPercent),
			DueDate:               due,
			Status:                status,
			Origin:                input.Origin,
		})
	}
	return series, nil
}

// PlanPaid produces the single already-settled installment used by the
// payment-processor and e-commerce paths. The row is born paid and carries
// its commission release stamped against the settlement date.
func (p *Planner) PlanPaid(input PlanInput, paymentDate time.Time) models.Installment {
	releaseStatus, releaseDate := ReleaseFor(paymentDate, p.now())
	return models.Installment{
		SellerID:                input.SellerID,
		CustomerID:              input.CustomerID,
		ProposalID:              input.ProposalID,
		SequenceNumber:          1,
		TotalInSeries:           1,
		AmountCents:             input.TotalCents,
		CommissionAmountCents:   commissionCents(input.TotalCents, input.CommissionPercent),
		DueDate:                 input.SettlementDate,
		PaymentDate:             &paymentDate,
		Status:                  enums.InstallmentStatusPaid,
		Origin:                  input.Origin,
		CommissionReleaseStatus: &releaseStatus,
		CommissionReleaseDate:   &releaseDate,
	}
}

// commissionCents rounds the installment commission to whole cents, half up.
func commissionCents(amountCents int, percent decimal.Decimal) int {
	return int(decimal.New(int64(amountCents), -2).
		Mul(percent).
		Div(oneHundred).
		Round(2).
		Mul(oneHundred).
		IntPart())
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
