package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

type CampaignRepository struct {
	db *sql.DB
}

var _ ports.CampaignRepository = (*CampaignRepository)(nil)

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// List returns every campaign in backend order (creation time). Status is
// derived at read time by the service, not stored.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, location, COALESCE(banner_url, ''),
		        start_date, end_date, capacity, created_at
		 FROM campaigns
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Location, &c.BannerURL,
			&c.StartDate, &c.EndDate, &c.Capacity, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, location, COALESCE(banner_url, ''),
		        start_date, end_date, capacity, created_at
		 FROM campaigns
		 WHERE id = $1`,
		id,
	).Scan(
		&c.ID, &c.Name, &c.Location, &c.BannerURL,
		&c.StartDate, &c.EndDate, &c.Capacity, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
