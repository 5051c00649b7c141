package domain

import (
	"testing"
	"time"
)

func sampleRequests() []Request {
	return []Request{
		{ID: "a", Status: StatusAppointmentConfirmed, AppointmentDate: today.Add(48 * time.Hour)},
		{ID: "b", Status: StatusCompleted, AppointmentDate: today.Add(-48 * time.Hour)},
		{ID: "c", Status: StatusPending, AppointmentDate: today.Add(24 * time.Hour)},
		{ID: "d", Status: StatusResultReturned, AppointmentDate: today.Add(-72 * time.Hour)},
		{ID: "e", Status: StatusAppointmentConfirmed, AppointmentDate: today.Add(72 * time.Hour)},
		{ID: "f", Status: StatusRejected, AppointmentDate: today.Add(-24 * time.Hour)},
	}
}

func ids(requests []Request) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.ID
	}
	return out
}

func TestFilterRequests(t *testing.T) {
	tests := []struct {
		name    string
		allowed StatusSet
		bucket  Bucket
		want    []string
	}{
		{
			name:    "all_statuses_upcoming",
			allowed: nil,
			bucket:  BucketUpcoming,
			want:    []string{"a", "e"},
		},
		{
			name:    "all_statuses_history",
			allowed: nil,
			bucket:  BucketHistory,
			want:    []string{"b", "d", "f"},
		},
		{
			name:    "single_status_upcoming",
			allowed: NewStatusSet(StatusAppointmentConfirmed),
			bucket:  BucketUpcoming,
			want:    []string{"a", "e"},
		},
		{
			name:    "single_status_history_excludes_other_statuses",
			allowed: NewStatusSet(StatusCompleted),
			bucket:  BucketHistory,
			want:    []string{"b"},
		},
		{
			name:    "pending_never_matches_either_bucket",
			allowed: NewStatusSet(StatusPending),
			bucket:  BucketUpcoming,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRequests(sampleRequests(), tt.allowed, tt.bucket, today)

			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("got %v, want %v", gotIDs, tt.want)
			}
			for i := range tt.want {
				if gotIDs[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", gotIDs, tt.want)
				}
			}
		})
	}
}

// Output must be a subsequence of input: order preserved, no re-sort.
func TestFilterRequests_PreservesOrder(t *testing.T) {
	input := sampleRequests()
	got := FilterRequests(input, nil, BucketHistory, today)

	lastIdx := -1
	pos := map[string]int{}
	for i, r := range input {
		pos[r.ID] = i
	}
	for _, r := range got {
		if pos[r.ID] <= lastIdx {
			t.Fatalf("order not preserved: %v", ids(got))
		}
		lastIdx = pos[r.ID]
	}
}

func TestFilterRequests_EmptyInput(t *testing.T) {
	if got := FilterRequests(nil, nil, BucketUpcoming, today); len(got) != 0 {
		t.Errorf("expected empty result, got %d items", len(got))
	}
	if got := CountByStatus(nil, StatusCompleted, true, today); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestFilterRequests_InvalidDateRowsDropped(t *testing.T) {
	input := []Request{
		{ID: "ok", Status: StatusAppointmentConfirmed, AppointmentDate: today.Add(48 * time.Hour)},
		{ID: "bad", Status: StatusAppointmentConfirmed},
	}
	got := FilterRequests(input, nil, BucketUpcoming, today)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("got %v, want only the valid row", ids(got))
	}
}

// CountByStatus must agree with filtering on a single-status set.
func TestCountByStatus_MatchesFilter(t *testing.T) {
	requests := sampleRequests()
	for _, status := range DonationStatuses() {
		for _, past := range []bool{true, false} {
			bucket := BucketUpcoming
			if past {
				bucket = BucketHistory
			}
			want := len(FilterRequests(requests, NewStatusSet(status), bucket, today))
			got := CountByStatus(requests, status, past, today)
			if got != want {
				t.Errorf("CountByStatus(%s, past=%v) = %d, filter length = %d", status, past, got, want)
			}
		}
	}
}
