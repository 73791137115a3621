package enums

import "fmt"

// PaymentTerm is the negotiated billing condition attached to an invoiced
// proposal. The code decides how many installments an order produces and
// when each one is due.
type PaymentTerm string

const (
	PaymentTerm30       PaymentTerm = "30"
	PaymentTerm60       PaymentTerm = "60"
	PaymentTerm60Direct PaymentTerm = "60_direto"
	PaymentTerm90       PaymentTerm = "90"
	PaymentTerm6090     PaymentTerm = "60_90"
	PaymentTerm607590   PaymentTerm = "60_75_90"
	PaymentTerm6090120  PaymentTerm = "60_90_120"
)

var validPaymentTerms = []PaymentTerm{
	PaymentTerm30,
	PaymentTerm60,
	PaymentTerm60Direct,
	PaymentTerm90,
	PaymentTerm6090,
	PaymentTerm607590,
	PaymentTerm6090120,
}

// String implements fmt.Stringer.
func (t PaymentTerm) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PaymentTerm.
func (t PaymentTerm) IsValid() bool {
	for _, candidate := range validPaymentTerms {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePaymentTerm converts raw input into a PaymentTerm.
func ParsePaymentTerm(value string) (PaymentTerm, error) {
	for _, candidate := range validPaymentTerms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment term %q", value)
}
