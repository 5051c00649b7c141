package domain

import "errors"

var (
	// ErrInvalidDate marks a request whose relevant date is missing or
	// unparseable. The classifier and eligibility rule refuse to compare
	// against such a date instead of guessing a bucket.
	ErrInvalidDate = errors.New("request has no valid date")

	// ErrNotCancellable is returned when a cancel is attempted against a
	// request the eligibility rule does not permit cancelling.
	ErrNotCancellable = errors.New("request cannot be cancelled")

	// ErrCancelWindowClosed is the lead-time variant of ErrNotCancellable:
	// the appointment is confirmed but starts within the cancel window.
	ErrCancelWindowClosed = errors.New("cancel window has closed")

	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
)
