package domain

import (
	"errors"
	"testing"
	"time"
)

var today = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func req(status Status, date time.Time) Request {
	return Request{ID: "r1", Flow: FlowDonation, Status: status, AppointmentDate: date}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		date   time.Time
		want   Bucket
	}{
		{
			name:   "confirmed_future_is_upcoming",
			status: StatusAppointmentConfirmed,
			date:   today.Add(48 * time.Hour),
			want:   BucketUpcoming,
		},
		{
			name:   "confirmed_same_day_is_upcoming",
			status: StatusAppointmentConfirmed,
			date:   time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			want:   BucketUpcoming,
		},
		{
			name:   "confirmed_past_is_history",
			status: StatusAppointmentConfirmed,
			date:   today.Add(-48 * time.Hour),
			want:   BucketHistory,
		},
		{
			name:   "checked_in_future_is_upcoming",
			status: StatusCustomerCheckedIn,
			date:   today.Add(24 * time.Hour),
			want:   BucketUpcoming,
		},
		{
			name:   "result_returned_future_is_history",
			status: StatusResultReturned,
			date:   today.Add(24 * time.Hour),
			want:   BucketHistory,
		},
		{
			name:   "not_qualified_future_is_history",
			status: StatusNotQualified,
			date:   today.Add(24 * time.Hour),
			want:   BucketHistory,
		},
		{
			name:   "no_show_future_is_history",
			status: StatusNoShowAfterCheckin,
			date:   today.Add(24 * time.Hour),
			want:   BucketHistory,
		},
		{
			name:   "cancelled_future_is_history",
			status: StatusCustomerCancelled,
			date:   today.Add(24 * time.Hour),
			want:   BucketHistory,
		},
		{
			name:   "pending_is_excluded_regardless_of_date",
			status: StatusPending,
			date:   today.Add(24 * time.Hour),
			want:   BucketExcluded,
		},
		{
			name:   "pending_past_is_still_excluded",
			status: StatusPending,
			date:   today.Add(-24 * time.Hour),
			want:   BucketExcluded,
		},
		{
			name:   "unknown_status_future_is_upcoming",
			status: Status("some_new_status"),
			date:   today.Add(24 * time.Hour),
			want:   BucketUpcoming,
		},
		{
			name:   "unknown_status_past_is_history",
			status: Status("some_new_status"),
			date:   today.Add(-24 * time.Hour),
			want:   BucketHistory,
		},
		{
			name:   "emergency_approved_future_is_upcoming",
			status: StatusApproved,
			date:   today.Add(24 * time.Hour),
			want:   BucketUpcoming,
		},
		{
			name:   "emergency_expired_past_is_history",
			status: StatusExpired,
			date:   today.Add(-24 * time.Hour),
			want:   BucketHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(req(tt.status, tt.date), today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify(%s, %s) = %s, want %s", tt.status, tt.date, got, tt.want)
			}
		})
	}
}

func TestClassify_DateOnlyComparison(t *testing.T) {
	// Earlier the same day counts as today, not as the past.
	morning := time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	got, err := Classify(req(StatusAppointmentConfirmed, morning), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != BucketUpcoming {
		t.Errorf("same-day appointment classified %s, want %s", got, BucketUpcoming)
	}
}

func TestClassify_ZeroDateIsError(t *testing.T) {
	_, err := Classify(req(StatusAppointmentConfirmed, time.Time{}), today)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	r := req(StatusAppointmentConfirmed, today.Add(24*time.Hour))
	first, err := Classify(r, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Classify(r, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("Classify not deterministic: %s then %s", first, again)
		}
	}
}
