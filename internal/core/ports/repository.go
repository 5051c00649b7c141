package ports

import (
	"context"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
)

type DonorRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateDonor(ctx context.Context, donor domain.Donor, outboxPayload []byte) error
}

type RequestRepository interface {
	Create(ctx context.Context, req domain.Request, outboxPayload []byte) error
	FindByID(ctx context.Context, id string) (*domain.Request, error)
	ListByPerson(ctx context.Context, personID string, flow domain.Flow) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, at time.Time, outboxPayload []byte) error
}

type CampaignRepository interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
}
