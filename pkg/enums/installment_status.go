package enums

import "fmt"

// InstallmentStatus tracks the payment lifecycle of a single installment.
// The literals are matched verbatim by downstream reporting, so they must
// not be renamed.
type InstallmentStatus string

const (
	InstallmentStatusAwaiting InstallmentStatus = "aguardando"
	InstallmentStatusPaid     InstallmentStatus = "paga"
	InstallmentStatusOverdue  InstallmentStatus = "atrasada"
)

var validInstallmentStatuses = []InstallmentStatus{
	InstallmentStatusAwaiting,
	InstallmentStatusPaid,
	InstallmentStatusOverdue,
}

// String implements fmt.Stringer.
func (s InstallmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InstallmentStatus.
func (s InstallmentStatus) IsValid() bool {
	for _, candidate := range validInstallmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInstallmentStatus converts raw input into an InstallmentStatus.
func ParseInstallmentStatus(value string) (InstallmentStatus, error) {
	for _, candidate := range validInstallmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid installment status %q", value)
}
