package domain

// Flow distinguishes the two request lifecycles the platform tracks.
type Flow string

const (
	FlowDonation  Flow = "donation"
	FlowEmergency Flow = "emergency"
)

// Status is a lifecycle state as returned by the backend. The set is closed
// per flow, but values outside the enumeration must degrade gracefully
// (stale service vs. newer producer), never fail.
type Status string

// Donation appointment lifecycle.
const (
	StatusPending              Status = "pending"
	StatusAppointmentConfirmed Status = "appointment_confirmed"
	StatusCustomerCheckedIn    Status = "customer_checked_in"
	StatusCompleted            Status = "completed"
	StatusResultReturned       Status = "result_returned"
	StatusRejected             Status = "rejected"
	StatusAppointmentCancelled Status = "appointment_cancelled"
	StatusCustomerCancelled    Status = "customer_cancelled"
	StatusNotQualified         Status = "not_qualified"
	StatusNoShowAfterCheckin   Status = "no_show_after_checkin"
)

// Emergency request lifecycle. Pending and rejected are shared with the
// donation flow on purpose: the backend uses the same literals.
const (
	StatusApproved         Status = "approved"
	StatusContactsProvided Status = "contacts_provided"
	StatusExpired          Status = "expired"
)

// Tag is the visual category a status maps to. Purely presentational; the
// caller decides what a tag looks like.
type Tag string

const (
	TagNeutral Tag = "neutral"
	TagInfo    Tag = "info"
	TagSuccess Tag = "success"
	TagWarning Tag = "warning"
	TagDanger  Tag = "danger"
)

type statusMeta struct {
	label string
	tag   Tag
}

var statusLabels = map[Status]statusMeta{
	StatusPending:              {"Pending review", TagWarning},
	StatusAppointmentConfirmed: {"Appointment confirmed", TagInfo},
	StatusCustomerCheckedIn:    {"Checked in", TagInfo},
	StatusCompleted:            {"Donation completed", TagSuccess},
	StatusResultReturned:       {"Result available", TagSuccess},
	StatusRejected:             {"Rejected", TagDanger},
	StatusAppointmentCancelled: {"Cancelled by center", TagDanger},
	StatusCustomerCancelled:    {"Cancelled by you", TagNeutral},
	StatusNotQualified:         {"Not qualified", TagDanger},
	StatusNoShowAfterCheckin:   {"No show", TagDanger},
	StatusApproved:             {"Approved", TagInfo},
	StatusContactsProvided:     {"Donor contacts provided", TagSuccess},
	StatusExpired:              {"Expired", TagNeutral},
}

// Label returns the display label and tag for s. The mapping is total: an
// unrecognized status comes back as its raw value with a neutral tag.
func (s Status) Label() (string, Tag) {
	if meta, ok := statusLabels[s]; ok {
		return meta.label, meta.tag
	}
	return string(s), TagNeutral
}

// DonationStatuses returns the closed donation-flow enumeration, in
// lifecycle order.
func DonationStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAppointmentConfirmed,
		StatusCustomerCheckedIn,
		StatusCompleted,
		StatusResultReturned,
		StatusRejected,
		StatusAppointmentCancelled,
		StatusCustomerCancelled,
		StatusNotQualified,
		StatusNoShowAfterCheckin,
	}
}

// EmergencyStatuses returns the closed emergency-flow enumeration.
func EmergencyStatuses() []Status {
	return []Status{
		StatusPending,
		StatusApproved,
		StatusRejected,
		StatusContactsProvided,
		StatusExpired,
	}
}

// terminalStatuses are states after which no further lifecycle transition or
// user action is expected.
var terminalStatuses = map[Status]bool{
	StatusCompleted:            true,
	StatusResultReturned:       true,
	StatusCustomerCancelled:    true,
	StatusAppointmentCancelled: true,
	StatusNotQualified:         true,
	StatusNoShowAfterCheckin:   true,
}

// IsTerminal reports whether s is a terminal donation-flow status.
// Unrecognized statuses are treated as non-terminal.
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}
