package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	campaignCacheKey = "campaigns:all"
	campaignCacheTTL = 2 * time.Minute
)

// CampaignService serves the campaign browser. The full list is small and
// read-heavy, so it is cached in Redis as one blob and sorted/filtered per
// request.
type CampaignService struct {
	campaigns ports.CampaignRepository
	cache     *redis.Client
	now       func() time.Time
}

var _ ports.CampaignService = (*CampaignService)(nil)

func NewCampaignService(campaigns ports.CampaignRepository, cache *redis.Client) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		cache:     cache,
		now:       time.Now,
	}
}

// List returns campaigns matching the search query and status filter,
// ordered active first, then not started, then ended, most recent start
// first within each group.
func (s *CampaignService) List(ctx context.Context, query string, statuses []domain.CampaignStatus) ([]domain.Campaign, error) {
	campaigns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range campaigns {
		campaigns[i].Status = domain.DeriveCampaignStatus(campaigns[i].StartDate, campaigns[i].EndDate, now)
	}

	var allowed map[domain.CampaignStatus]bool
	if len(statuses) > 0 {
		allowed = make(map[domain.CampaignStatus]bool, len(statuses))
		for _, st := range statuses {
			allowed[st] = true
		}
	}

	filtered := domain.FilterCampaigns(campaigns, query, allowed)
	domain.SortCampaigns(filtered)
	return filtered, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	campaign.Status = domain.DeriveCampaignStatus(campaign.StartDate, campaign.EndDate, s.now())
	return campaign, nil
}

// load reads the campaign list through the cache. Cache failures degrade to
// the database; they are logged, never surfaced.
func (s *CampaignService) load(ctx context.Context) ([]domain.Campaign, error) {
	if s.cache != nil {
		blob, err := s.cache.Get(ctx, campaignCacheKey).Bytes()
		if err == nil {
			var cached []domain.Campaign
			if err := json.Unmarshal(blob, &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("campaign cache read failed: %v", err)
		}
	}

	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if blob, err := json.Marshal(campaigns); err == nil {
			if err := s.cache.Set(ctx, campaignCacheKey, blob, campaignCacheTTL).Err(); err != nil {
				log.Printf("campaign cache write failed: %v", err)
			}
		}
	}
	return campaigns, nil
}
