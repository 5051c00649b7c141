package domain

import "time"

// Bucket is the coarse display category a request falls into.
type Bucket string

const (
	BucketUpcoming Bucket = "upcoming"
	BucketHistory  Bucket = "history"

	// BucketExcluded covers pending requests, which the list views show in
	// neither tab. Callers that still want them (e.g. a "pending approval"
	// badge) filter for StatusPending directly.
	BucketExcluded Bucket = "excluded"
)

// historicalRegardless holds the statuses that belong to history no matter
// what the appointment date says.
var historicalRegardless = map[Status]bool{
	StatusResultReturned:     true,
	StatusNotQualified:       true,
	StatusNoShowAfterCheckin: true,
}

// Classify decides which bucket a request belongs to, as a pure function of
// (status, relevantDate, today). Comparison is date-only; time-of-day is
// stripped from both sides.
//
// Unrecognized statuses do not fail: they bucket by date alone.
// A zero relevant date is a data-integrity error, not a bucket.
func Classify(r Request, today time.Time) (Bucket, error) {
	if r.AppointmentDate.IsZero() {
		return "", ErrInvalidDate
	}

	if r.Status == StatusPending {
		return BucketExcluded, nil
	}
	if historicalRegardless[r.Status] {
		return BucketHistory, nil
	}

	day := truncateToDay(r.AppointmentDate)
	ref := truncateToDay(today)

	if day.Before(ref) {
		return BucketHistory, nil
	}
	if r.Status.IsTerminal() {
		return BucketHistory, nil
	}
	return BucketUpcoming, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
