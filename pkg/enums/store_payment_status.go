package enums

import "fmt"

// StorePaymentStatus mirrors the e-commerce platform's payment state.
type StorePaymentStatus string

const (
	StorePaymentStatusPending StorePaymentStatus = "pending"
	StorePaymentStatusPaid    StorePaymentStatus = "paid"
	StorePaymentStatusRefused StorePaymentStatus = "refused"
)

var validStorePaymentStatuses = []StorePaymentStatus{
	StorePaymentStatusPending,
	StorePaymentStatusPaid,
	StorePaymentStatusRefused,
}

// String implements fmt.Stringer.
func (s StorePaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StorePaymentStatus.
func (s StorePaymentStatus) IsValid() bool {
	for _, candidate := range validStorePaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStorePaymentStatus converts raw input into a StorePaymentStatus.
func ParseStorePaymentStatus(value string) (StorePaymentStatus, error) {
	for _, candidate := range validStorePaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store payment status %q", value)
}
