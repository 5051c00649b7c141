package domain

import "testing"

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status    Status
		wantLabel string
		wantTag   Tag
	}{
		{StatusPending, "Pending review", TagWarning},
		{StatusAppointmentConfirmed, "Appointment confirmed", TagInfo},
		{StatusCompleted, "Donation completed", TagSuccess},
		{StatusResultReturned, "Result available", TagSuccess},
		{StatusCustomerCancelled, "Cancelled by you", TagNeutral},
		{StatusNoShowAfterCheckin, "No show", TagDanger},
		{StatusContactsProvided, "Donor contacts provided", TagSuccess},
		{StatusExpired, "Expired", TagNeutral},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			label, tag := tt.status.Label()
			if label != tt.wantLabel || tag != tt.wantTag {
				t.Errorf("got (%q, %q), want (%q, %q)", label, tag, tt.wantLabel, tt.wantTag)
			}
		})
	}
}

// Every enumerated status must have a real label, and anything outside the
// enumeration falls back to its raw value with a neutral tag.
func TestStatusLabel_Total(t *testing.T) {
	for _, s := range append(DonationStatuses(), EmergencyStatuses()...) {
		label, _ := s.Label()
		if label == string(s) {
			t.Errorf("status %q has no display label", s)
		}
	}

	label, tag := Status("donor_teleported").Label()
	if label != "donor_teleported" || tag != TagNeutral {
		t.Errorf("unknown status: got (%q, %q), want raw value with neutral tag", label, tag)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []Status{
		StatusCompleted,
		StatusResultReturned,
		StatusCustomerCancelled,
		StatusAppointmentCancelled,
		StatusNotQualified,
		StatusNoShowAfterCheckin,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
	}

	open := []Status{StatusPending, StatusAppointmentConfirmed, StatusCustomerCheckedIn, Status("mystery_state")}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}
