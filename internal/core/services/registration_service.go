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

type RegistrationService struct {
	donorRepo ports.DonorRepository
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(donorRepo ports.DonorRepository) *RegistrationService {
	return &RegistrationService{donorRepo: donorRepo}
}

// RegisterDonor creates a donor profile. The donor-registered event payload
// goes into the outbox in the same transaction so downstream services (donor
// matching, notifications) hear about the new donor exactly once.
func (s *RegistrationService) RegisterDonor(
	ctx context.Context,
	email, firstName, lastName, phone, address string,
	bloodType domain.BloodType,
) (string, error) {
	if _, ok := domain.CompatibilityFor(bloodType); !ok {
		return "Registration failed", fmt.Errorf("unknown blood type %q", bloodType)
	}

	donor := domain.Donor{
		User: domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			Role:      domain.RoleDonor,
			CreatedAt: time.Now(),
		},
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		BloodType: bloodType,
		Address:   address,
	}

	event := struct {
		UserID    string `json:"user_id"`
		LastName  string `json:"last_name"`
		BloodType string `json:"blood_type"`
	}{
		UserID:    donor.User.ID,
		LastName:  donor.LastName,
		BloodType: string(donor.BloodType),
	}

	outboxPayload, err := json.Marshal(event)
	if err != nil {
		return "Registration failed", err
	}

	if err := s.donorRepo.CreateDonor(ctx, donor, outboxPayload); err != nil {
		return "Registration failed", err
	}

	return "Donor registered successfully", nil
}
