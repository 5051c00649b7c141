package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"

	"github.com/google/uuid"
)

type EmergencyService struct {
	requests ports.RequestRepository
	now      func() time.Time
}

var _ ports.EmergencyService = (*EmergencyService)(nil)

func NewEmergencyService(requests ports.RequestRepository) *EmergencyService {
	return &EmergencyService{
		requests: requests,
		now:      time.Now,
	}
}

// Create registers an emergency blood request. Staff review it from pending;
// the requester only ever reads status afterwards.
func (s *EmergencyService) Create(ctx context.Context, req domain.Request) (*domain.Request, error) {
	if req.AppointmentDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	now := s.now()
	req.ID = uuid.NewString()
	req.Flow = domain.FlowEmergency
	req.Status = domain.StatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	payload, err := statusEventPayload(req, now)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req, payload); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListMine returns the requester's emergency requests with display state.
func (s *EmergencyService) ListMine(ctx context.Context, personID string) ([]ports.RequestView, error) {
	requests, err := s.requests.ListByPerson(ctx, personID, domain.FlowEmergency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]ports.RequestView, 0, len(requests))
	for _, r := range requests {
		view, err := buildView(r, now)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", r.ID, err)
		}
		views = append(views, view)
	}
	return views, nil
}

// Cancel withdraws an emergency request. Only pending requests can be
// withdrawn; once staff have acted on one it stays on the record.
func (s *EmergencyService) Cancel(ctx context.Context, personID, requestID string) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Person.ID != personID {
		return domain.ErrNotFound
	}
	if req.Status != domain.StatusPending {
		return domain.ErrNotCancellable
	}

	now := s.now()
	req.Status = domain.StatusExpired
	payload, err := statusEventPayload(*req, now)
	if err != nil {
		return err
	}
	return s.requests.UpdateStatus(ctx, req.ID, domain.StatusExpired, now, payload)
}
