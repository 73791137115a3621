package installments

import (
	"time"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

const releaseDayOfMonth = 5

// ReleaseFor computes the commission release for a paid installment.
// The release day is the 5th of the month following settlement: on or after
// that day the commission is released immediately, before it the commission
// stays scheduled for that date.
func ReleaseFor(settlement, today time.Time) (enums.CommissionReleaseStatus, time.Time) {
	release := time.Date(settlement.Year(), settlement.Month()+1, releaseDayOfMonth, 0, 0, 0, 0, settlement.Location())
	if dateOf(today).Before(release) {
		return enums.CommissionReleaseScheduled, release
	}
	return enums.CommissionReleaseReleased, release
}
