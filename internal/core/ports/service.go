package ports

import (
	"context"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
)

type AuthService interface {
	GenerateState() (string, error)
	GetAuthURL(state string) string
	Authenticate(ctx context.Context, code string) (string, error)
	Logout(ctx context.Context, token string) error
}

type RegistrationService interface {
	RegisterDonor(ctx context.Context, email, firstName, lastName, phone, address string, bloodType domain.BloodType) (string, error)
}

// RequestView is a request plus the display state derived from it.
type RequestView struct {
	domain.Request
	Bucket  domain.Bucket  `json:"bucket"`
	Label   string         `json:"label"`
	Tag     domain.Tag     `json:"tag"`
	Actions domain.Actions `json:"actions"`
}

type DonationService interface {
	Book(ctx context.Context, personID, campaignID string, appointmentDate time.Time) (*domain.Request, error)
	ListMyRequests(ctx context.Context, personID string, bucket domain.Bucket, allowed domain.StatusSet) ([]RequestView, error)
	CountsByStatus(ctx context.Context, personID string, past bool) (map[domain.Status]int, error)
	Cancel(ctx context.Context, personID, requestID string) error
}

type EmergencyService interface {
	Create(ctx context.Context, req domain.Request) (*domain.Request, error)
	ListMine(ctx context.Context, personID string) ([]RequestView, error)
	Cancel(ctx context.Context, personID, requestID string) error
}

type CampaignService interface {
	List(ctx context.Context, query string, statuses []domain.CampaignStatus) ([]domain.Campaign, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
}
