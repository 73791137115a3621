package installments

import (
	"errors"
	"fmt"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// ErrInvalidPaymentTerm is returned when a term code is outside the
// enumerated set. Callers are expected to fall back to the single 30-day
// term and log the fallback.
var ErrInvalidPaymentTerm = errors.New("invalid payment term")

// termOffsets is the sole source of truth for how many installments a
// payment term produces and when each one is due, in days after settlement.
var termOffsets = map[enums.PaymentTerm][]int{
	enums.PaymentTerm30:       {30},
	enums.PaymentTerm60:       {60},
	enums.PaymentTerm60Direct: {60},
	enums.PaymentTerm90:       {90},
	enums.PaymentTerm6090:     {60, 90},
	enums.PaymentTerm607590:   {60, 75, 90},
	enums.PaymentTerm6090120:  {60, 90, 120},
}

// Offsets returns the due-day offsets for a payment term.
func Offsets(term enums.PaymentTerm) ([]int, error) {
	offsets, ok := termOffsets[term]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentTerm, term)
	}
	return offsets, nil
}
