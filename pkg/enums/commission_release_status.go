package enums

import "fmt"

// CommissionReleaseStatus gates seller payout on the monthly cutoff. It is
// only meaningful once the owning installment is paid.
type CommissionReleaseStatus string

const (
	CommissionReleaseScheduled CommissionReleaseStatus = "agendada"
	CommissionReleaseReleased  CommissionReleaseStatus = "liberada"
)

var validCommissionReleaseStatuses = []CommissionReleaseStatus{
	CommissionReleaseScheduled,
	CommissionReleaseReleased,
}

// String implements fmt.Stringer.
func (s CommissionReleaseStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CommissionReleaseStatus.
func (s CommissionReleaseStatus) IsValid() bool {
	for _, candidate := range validCommissionReleaseStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCommissionReleaseStatus converts raw input into a CommissionReleaseStatus.
func ParseCommissionReleaseStatus(value string) (CommissionReleaseStatus, error) {
	for _, candidate := range validCommissionReleaseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commission release status %q", value)
}
