package domain

import "time"

// CancelLeadTime is the cutoff before a confirmed appointment after which
// cancellation is disabled.
const CancelLeadTime = 24 * time.Hour

// Actions reports which user actions are currently permitted on a request.
type Actions struct {
	Cancel     bool `json:"cancel"`
	ViewResult bool `json:"view_result"`
	ViewDetail bool `json:"view_detail"`
}

// nonCancellable lists the states in which the cancel action is never
// offered: terminal states plus checked-in, where the donor is already at
// the collection point.
var nonCancellable = map[Status]bool{
	StatusCustomerCheckedIn:    true,
	StatusCompleted:            true,
	StatusResultReturned:       true,
	StatusCustomerCancelled:    true,
	StatusAppointmentCancelled: true,
	StatusNotQualified:         true,
	StatusNoShowAfterCheckin:   true,
}

// isCancellable holds the status half of the cancel rule. Unrecognized
// statuses fail open: a status this build does not know about still lets the
// user attempt a cancel rather than silently blocking them. Flipping that
// policy means inverting the default here.
func isCancellable(s Status) bool {
	return !nonCancellable[s]
}

// ComputeActions evaluates the eligibility rules for a single request. It is
// total over status values, including unknown ones.
//
// The only error case is a confirmed appointment with no valid date: the
// lead-time rule cannot run, and treating the request as either side of the
// window would be a silent guess.
func ComputeActions(r Request, now time.Time) (Actions, error) {
	a := Actions{
		ViewDetail: true,
		ViewResult: r.Status == StatusResultReturned,
		Cancel:     isCancellable(r.Status),
	}

	if a.Cancel && r.Status == StatusAppointmentConfirmed {
		if r.AppointmentDate.IsZero() {
			return Actions{}, ErrInvalidDate
		}
		a.Cancel = r.AppointmentDate.Sub(now) > CancelLeadTime
	}

	return a, nil
}
