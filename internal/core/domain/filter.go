package domain

import "time"

// StatusSet is a multi-select status filter. A nil or empty set allows
// every status.
type StatusSet map[Status]bool

// NewStatusSet builds a StatusSet from a slice of raw status values.
func NewStatusSet(statuses ...Status) StatusSet {
	if len(statuses) == 0 {
		return nil
	}
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

// Allows reports whether s passes the filter.
func (set StatusSet) Allows(s Status) bool {
	return len(set) == 0 || set[s]
}

// FilterRequests retains the requests whose status is in allowed and whose
// bucket (relative to today) matches bucket. The result is a subsequence of
// the input: relative order is preserved and nothing is re-sorted.
//
// Requests with an invalid date are dropped rather than guessed into a
// bucket; ListRequests on the service layer reports them separately.
func FilterRequests(requests []Request, allowed StatusSet, bucket Bucket, today time.Time) []Request {
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		if !allowed.Allows(r.Status) {
			continue
		}
		b, err := Classify(r, today)
		if err != nil {
			continue
		}
		if b == bucket {
			out = append(out, r)
		}
	}
	return out
}

// CountByStatus counts the requests with the given status in the past
// (history) or future (upcoming) bucket. Used to annotate filter-menu items
// with live counts; always recomputed from the full list.
func CountByStatus(requests []Request, status Status, past bool, today time.Time) int {
	bucket := BucketUpcoming
	if past {
		bucket = BucketHistory
	}
	return len(FilterRequests(requests, NewStatusSet(status), bucket, today))
}
