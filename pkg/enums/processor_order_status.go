package enums

import "fmt"

// ProcessorOrderStatus mirrors the payment state synced from Mercado Pago.
type ProcessorOrderStatus string

const (
	ProcessorOrderStatusPending  ProcessorOrderStatus = "PENDENTE"
	ProcessorOrderStatusPaid     ProcessorOrderStatus = "PAGO"
	ProcessorOrderStatusRejected ProcessorOrderStatus = "RECUSADO"
)

var validProcessorOrderStatuses = []ProcessorOrderStatus{
	ProcessorOrderStatusPending,
	ProcessorOrderStatusPaid,
	ProcessorOrderStatusRejected,
}

// String implements fmt.Stringer.
func (s ProcessorOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProcessorOrderStatus.
func (s ProcessorOrderStatus) IsValid() bool {
	for _, candidate := range validProcessorOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProcessorOrderStatus converts raw input into a ProcessorOrderStatus.
func ParseProcessorOrderStatus(value string) (ProcessorOrderStatus, error) {
	for _, candidate := range validProcessorOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid processor order status %q", value)
}
