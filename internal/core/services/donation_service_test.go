package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
	"github.com/hemolink/donation-service/test/mocks"
)

var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newDonationService(requests *mocks.MockRequestRepository, campaigns *mocks.MockCampaignRepository) *DonationService {
	svc := NewDonationService(requests, campaigns)
	svc.now = fixedClock
	return svc
}

func TestDonationService_Book(t *testing.T) {
	requests := mocks.NewMockRequestRepository()
	campaigns := mocks.NewMockCampaignRepository(domain.Campaign{
		ID:        "camp-1",
		Name:      "City Hospital Drive",
		Location:  "City Hospital",
		StartDate: fixedNow.Add(24 * time.Hour),
	})
	svc := newDonationService(requests, campaigns)

	appointment := fixedNow.Add(48 * time.Hour)
	req, err := svc.Book(context.Background(), "person-1", "camp-1", appointment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Status != domain.StatusPending {
		t.Errorf("new booking should be pending, got %q", req.Status)
	}
	if req.Flow != domain.FlowDonation {
		t.Errorf("flow = %q, want donation", req.Flow)
	}
	if req.Campaign.Name != "City Hospital Drive" {
		t.Errorf("campaign not denormalized onto request: %+v", req.Campaign)
	}
	if len(requests.CreateCalls) != 1 {
		t.Fatalf("expected one repository create, got %d", len(requests.CreateCalls))
	}

	var evt ports.RequestStatusEvent
	if err := json.Unmarshal(requests.OutboxPayloads[0], &evt); err != nil {
		t.Fatalf("outbox payload is not a status event: %v", err)
	}
	if evt.RequestID != req.ID || evt.Status != string(domain.StatusPending) {
		t.Errorf("outbox event = %+v", evt)
	}
}

func TestDonationService_Book_InvalidInput(t *testing.T) {
	requests := mocks.NewMockRequestRepository()
	campaigns := mocks.NewMockCampaignRepository()
	svc := newDonationService(requests, campaigns)

	if _, err := svc.Book(context.Background(), "person-1", "camp-1", time.Time{}); !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("zero date: expected ErrInvalidDate, got %v", err)
	}

	if _, err := svc.Book(context.Background(), "person-1", "missing", fixedNow.Add(24*time.Hour)); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown campaign: expected ErrNotFound, got %v", err)
	}
	if len(requests.CreateCalls) != 0 {
		t.Errorf("failed bookings must not reach the repository")
	}
}

func TestDonationService_ListMyRequests(t *testing.T) {
	requests := mocks.NewMockRequestRepository()
	requests.SeedRequest(domain.Request{
		ID:              "up-1",
		Flow:            domain.FlowDonation,
		Status:          domain.StatusAppointmentConfirmed,
		AppointmentDate: fixedNow.Add(48 * time.Hour),
		Person:          domain.PersonRef{ID: "person-1"},
	})
	requests.SeedRequest(domain.Request{
		ID:              "hist-1",
		Flow:            domain.FlowDonation,
		Status:          domain.StatusResultReturned,
		AppointmentDate: fixedNow.Add(-48 * time.Hour),
		Person:          domain.PersonRef{ID: "person-1"},
	})
	requests.SeedRequest(domain.Request{
		ID:              "other-person",
		Flow:            domain.FlowDonation,
		Status:          domain.StatusAppointmentConfirmed,
		AppointmentDate: fixedNow.Add(48 * time.Hour),
		Person:          domain.PersonRef{ID: "person-2"},
	})
	svc := newDonationService(requests, mocks.NewMockCampaignRepository())

	upcoming, err := svc.ListMyRequests(context.Background(), "person-1", domain.BucketUpcoming, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != "up-1" {
		t.Fatalf("upcoming = %+v", upcoming)
	}
	if upcoming[0].Label != "Appointment confirmed" || upcoming[0].Tag != domain.TagInfo {
		t.Errorf("view not annotated with label: %+v", upcoming[0])
	}
	if !upcoming[0].Actions.Cancel {
		t.Errorf("confirmed appointment 48h out should be cancellable")
	}

	history, err := svc.ListMyRequests(context.Background(), "person-1", domain.BucketHistory, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].ID != "hist-1" {
		t.Fatalf("history = %+v", history)
	}
	if !history[0].Actions.ViewResult {
		t.Errorf("result_returned should offer viewResult")
	}
}

func TestDonationService_ListMyRequests_StatusFilter(t *testing.T) {
	requests := mocks.NewMockRequestRepository()
	requests.SeedRequest(domain.Request{
		ID:              "done",
		Flow:            domain.FlowDonation,
		Status:          domain.StatusCompleted,
		AppointmentDate: fixedNow.Add(-24 * time.Hour),
		Person:          domain.PersonRef{ID: "person-1"},
	})
	requests.SeedRequest(domain.Request{
		ID:              "noshow",
		Flow:            domain.FlowDonation,
		Status:          domain.StatusNoShowAfterCheckin,
		AppointmentDate: fixedNow.Add(-24 * time.Hour),
		Person:          domain.PersonRef{ID: "person-1"},
	})
	svc := newDonationService(requests, mocks.NewMockCampaignRepository())

	views, err := svc.ListMyRequests(context.Background(), "person-1", domain.BucketHistory,
		domain.NewStatusSet(domain.StatusCompleted))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].ID != "done" {
		t.Fatalf("filtered views = %+v", views)
	}
}

func TestDonationService_CountsByStatus(t *testing.T) {
	requests := mocks.NewMockRequestRepository()
	requests.SeedRequest(domain.Request{
		ID: "a", Flow: domain.FlowDonation, Status: domain.StatusCompleted,
		AppointmentDate: fixedNow.Add(-24 * time.Hour), Person: domain.PersonRef{ID: "person-1"},
	})
	requests.SeedRequest(domain.Request{
		ID: "b", Flow: domain.FlowDonation, Status: domain.StatusCompleted,
		AppointmentDate: fixedNow.Add(-72 * time.Hour), Person: domain.PersonRef{ID: "person-1"},
	})
	requests.SeedRequest(domain.Request{
		ID: "c", Flow: domain.FlowDonation, Status: domain.StatusAppointmentConfirmed,
		AppointmentDate: fixedNow.Add(48 * time.Hour), Person: domain.PersonRef{ID: "person-1"},
	})
	svc := newDonationService(requests, mocks.NewMockCampaignRepository())

	past, err := svc.CountsByStatus(context.Background(), "person-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if past[domain.StatusCompleted] != 2 {
		t.Errorf("completed count = %d, want 2", past[domain.StatusCompleted])
	}
	if past[domain.StatusAppointmentConfirmed] != 0 {
		t.Errorf("future confirmed request counted as history")
	}

	upcoming, err := svc.CountsByStatus(context.Background(), "person-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upcoming[domain.StatusAppointmentConfirmed] != 1 {
		t.Errorf("confirmed count = %d, want 1", upcoming[domain.StatusAppointmentConfirmed])
	}

	// Every donation status gets an entry, even at zero.
	if len(upcoming) != len(domain.DonationStatuses()) {
		t.Errorf("counts has %d entries, want %d", len(upcoming), len(domain.DonationStatuses()))
	}
}

func TestDonationService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.Status
		date    time.Time
		wantErr error
	}{
		{"pending", domain.StatusPending, fixedNow.Add(48 * time.Hour), nil},
		{"confirmed_outside_window", domain.StatusAppointmentConfirmed, fixedNow.Add(48 * time.Hour), nil},
		{"confirmed_inside_window", domain.StatusAppointmentConfirmed, fixedNow.Add(1 * time.Hour), domain.ErrCancelWindowClosed},
		{"checked_in", domain.StatusCustomerCheckedIn, fixedNow, domain.ErrNotCancellable},
		{"completed", domain.StatusCompleted, fixedNow.Add(-24 * time.Hour), domain.ErrNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := mocks.NewMockRequestRepository()
			requests.SeedRequest(domain.Request{
				ID:              "req-1",
				Flow:            domain.FlowDonation,
				Status:          tt.status,
				AppointmentDate: tt.date,
				Person:          domain.PersonRef{ID: "person-1"},
			})
			svc := newDonationService(requests, mocks.NewMockCampaignRepository())

			err := svc.Cancel(context.Background(), "person-1", "req-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr == nil {
				if len(requests.UpdateStatusCalls) != 1 || requests.UpdateStatusCalls[0] != domain.StatusCustomerCancelled {
					t.Errorf("expected one transition to customer_cancelled, got %v", requests.UpdateStatusCalls)
				}
				updated, _ := requests.FindByID(context.Background(), "req-1")
				if updated.Status != domain.StatusCustomerCancelled {
					t.Errorf("stored status = %q", updated.Status)
				}
			} else if len(requests.UpdateStatusCalls) != 0 {
				t.Errorf("rejected cancel must not touch the repository")
			}
		})
	}
}

func TestDonationService_Cancel_OwnershipAndMissing(t *testing.T) {
	requests := mocks.NewMockRequestRepository()
	requests.SeedRequest(domain.Request{
		ID:              "req-1",
		Flow:            domain.FlowDonation,
		Status:          domain.StatusPending,
		AppointmentDate: fixedNow.Add(48 * time.Hour),
		Person:          domain.PersonRef{ID: "person-1"},
	})
	svc := newDonationService(requests, mocks.NewMockCampaignRepository())

	// Someone else's request looks like a missing one, not a forbidden one.
	if err := svc.Cancel(context.Background(), "person-2", "req-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign request: expected ErrNotFound, got %v", err)
	}
	if err := svc.Cancel(context.Background(), "person-1", "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing request: expected ErrNotFound, got %v", err)
	}
}
