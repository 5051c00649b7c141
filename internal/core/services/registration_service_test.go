package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/test/mocks"
)

func TestRegistrationService_RegisterDonor(t *testing.T) {
	donors := mocks.NewMockDonorRepository()
	svc := NewRegistrationService(donors)

	msg, err := svc.RegisterDonor(context.Background(),
		"donor@example.com", "Sam", "Rivera", "+31600000000", "Main St 1", domain.BloodONeg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Donor registered successfully" {
		t.Errorf("message = %q", msg)
	}

	if len(donors.CreateDonorCalls) != 1 {
		t.Fatalf("expected one donor create, got %d", len(donors.CreateDonorCalls))
	}
	created := donors.CreateDonorCalls[0]
	if created.User.Role != domain.RoleDonor {
		t.Errorf("role = %q, want donor", created.User.Role)
	}
	if created.BloodType != domain.BloodONeg {
		t.Errorf("blood type = %q", created.BloodType)
	}
}

func TestRegistrationService_RegisterDonor_UnknownBloodType(t *testing.T) {
	donors := mocks.NewMockDonorRepository()
	svc := NewRegistrationService(donors)

	msg, err := svc.RegisterDonor(context.Background(),
		"donor@example.com", "Sam", "Rivera", "+31600000000", "Main St 1", domain.BloodType("Z+"))
	if err == nil {
		t.Fatal("expected an error for an unknown blood type")
	}
	if msg != "Registration failed" {
		t.Errorf("message = %q", msg)
	}
	if len(donors.CreateDonorCalls) != 0 {
		t.Errorf("invalid registration must not reach the repository")
	}
}

func TestRegistrationService_OutboxPayload(t *testing.T) {
	captured := [][]byte{}
	svc := NewRegistrationService(donorRepoFunc(func(ctx context.Context, donor domain.Donor, payload []byte) error {
		captured = append(captured, payload)
		return nil
	}))

	if _, err := svc.RegisterDonor(context.Background(),
		"donor@example.com", "Sam", "Rivera", "+31600000000", "Main St 1", domain.BloodABPos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(captured) != 1 {
		t.Fatalf("expected one payload, got %d", len(captured))
	}
	var evt struct {
		UserID    string `json:"user_id"`
		LastName  string `json:"last_name"`
		BloodType string `json:"blood_type"`
	}
	if err := json.Unmarshal(captured[0], &evt); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if evt.LastName != "Rivera" || evt.BloodType != "AB+" || evt.UserID == "" {
		t.Errorf("payload = %+v", evt)
	}
}

// donorRepoFunc adapts a function to ports.DonorRepository for payload
// capture; FindByEmail is unused in these tests.
type donorRepoFunc func(ctx context.Context, donor domain.Donor, payload []byte) error

func (f donorRepoFunc) CreateDonor(ctx context.Context, donor domain.Donor, payload []byte) error {
	return f(ctx, donor, payload)
}

func (f donorRepoFunc) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
