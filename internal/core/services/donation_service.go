package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"

	"github.com/google/uuid"
)

type DonationService struct {
	requests  ports.RequestRepository
	campaigns ports.CampaignRepository
	now       func() time.Time
}

var _ ports.DonationService = (*DonationService)(nil)

func NewDonationService(requests ports.RequestRepository, campaigns ports.CampaignRepository) *DonationService {
	return &DonationService{
		requests:  requests,
		campaigns: campaigns,
		now:       time.Now,
	}
}

// Book creates a pending donation appointment for a campaign. The status
// event row is written in the same transaction as the request (outbox
// pattern); the relay picks it up from there.
func (s *DonationService) Book(ctx context.Context, personID, campaignID string, appointmentDate time.Time) (*domain.Request, error) {
	if appointmentDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign lookup: %w", err)
	}

	now := s.now()
	req := domain.Request{
		ID:              uuid.NewString(),
		Flow:            domain.FlowDonation,
		Status:          domain.StatusPending,
		AppointmentDate: appointmentDate,
		Campaign: domain.CampaignRef{
			ID:             campaign.ID,
			Name:           campaign.Name,
			Location:       campaign.Location,
			BannerURL:      campaign.BannerURL,
			CollectionDate: campaign.StartDate,
		},
		Person:    domain.PersonRef{ID: personID},
		CreatedAt: now,
		UpdatedAt: now,
	}

	payload, err := statusEventPayload(req, now)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req, payload); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListMyRequests returns the donor's requests in the given bucket, filtered
// by the selected statuses, each annotated with its label and permitted
// actions. Order is whatever the repository returned.
func (s *DonationService) ListMyRequests(ctx context.Context, personID string, bucket domain.Bucket, allowed domain.StatusSet) ([]ports.RequestView, error) {
	requests, err := s.requests.ListByPerson(ctx, personID, domain.FlowDonation)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := domain.FilterRequests(requests, allowed, bucket, now)

	views := make([]ports.RequestView, 0, len(filtered))
	for _, r := range filtered {
		view, err := buildView(r, now)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", r.ID, err)
		}
		views = append(views, view)
	}
	return views, nil
}

// CountsByStatus computes per-status counts for one side of the tab bar.
// Recomputed from the full list on every call; the lists are small.
func (s *DonationService) CountsByStatus(ctx context.Context, personID string, past bool) (map[domain.Status]int, error) {
	requests, err := s.requests.ListByPerson(ctx, personID, domain.FlowDonation)
	if err != nil {
		return nil, err
	}

	now := s.now()
	counts := make(map[domain.Status]int, len(domain.DonationStatuses()))
	for _, status := range domain.DonationStatuses() {
		counts[status] = domain.CountByStatus(requests, status, past, now)
	}
	return counts, nil
}

// Cancel re-checks the eligibility rule server-side and moves the request to
// customer_cancelled. The client never mutates state optimistically; it
// re-fetches after this succeeds.
func (s *DonationService) Cancel(ctx context.Context, personID, requestID string) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Person.ID != personID {
		return domain.ErrNotFound
	}

	now := s.now()
	actions, err := domain.ComputeActions(*req, now)
	if err != nil {
		return err
	}
	if !actions.Cancel {
		if req.Status == domain.StatusAppointmentConfirmed {
			return domain.ErrCancelWindowClosed
		}
		return domain.ErrNotCancellable
	}

	req.Status = domain.StatusCustomerCancelled
	payload, err := statusEventPayload(*req, now)
	if err != nil {
		return err
	}
	return s.requests.UpdateStatus(ctx, req.ID, domain.StatusCustomerCancelled, now, payload)
}

func buildView(r domain.Request, now time.Time) (ports.RequestView, error) {
	bucket, err := domain.Classify(r, now)
	if err != nil {
		return ports.RequestView{}, err
	}
	actions, err := domain.ComputeActions(r, now)
	if err != nil {
		return ports.RequestView{}, err
	}
	label, tag := r.Status.Label()
	return ports.RequestView{
		Request: r,
		Bucket:  bucket,
		Label:   label,
		Tag:     tag,
		Actions: actions,
	}, nil
}

func statusEventPayload(r domain.Request, at time.Time) ([]byte, error) {
	evt := ports.RequestStatusEvent{
		RequestID:  r.ID,
		Flow:       string(r.Flow),
		Status:     string(r.Status),
		PersonID:   r.Person.ID,
		OccurredAt: at,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal status event: %w", err)
	}
	return payload, nil
}
