package ports

import (
	"context"
	"time"
)

// RequestStatusEvent is emitted through the outbox whenever a request is
// created or transitions status.
type RequestStatusEvent struct {
	RequestID  string    `json:"request_id"`
	Flow       string    `json:"flow"`
	Status     string    `json:"status"`
	PersonID   string    `json:"person_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt RequestStatusEvent) error
}
