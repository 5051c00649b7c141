package domain

import (
	"sort"
	"strings"
	"time"
)

// CampaignStatus describes where a campaign sits in its collection window.
type CampaignStatus string

const (
	CampaignActive     CampaignStatus = "active"
	CampaignNotStarted CampaignStatus = "not_started"
	CampaignEnded      CampaignStatus = "ended"
)

// campaignPriority orders campaign lists: running first, then upcoming,
// then finished.
var campaignPriority = map[CampaignStatus]int{
	CampaignActive:     0,
	CampaignNotStarted: 1,
	CampaignEnded:      2,
}

// Campaign is a blood-collection campaign donors can book into.
type Campaign struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	BannerURL string         `json:"banner_url,omitempty"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Capacity  int            `json:"capacity"`
	Status    CampaignStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// DeriveCampaignStatus computes the campaign status from its collection
// window relative to now.
func DeriveCampaignStatus(start, end time.Time, now time.Time) CampaignStatus {
	switch {
	case now.Before(start):
		return CampaignNotStarted
	case now.After(end):
		return CampaignEnded
	default:
		return CampaignActive
	}
}

// SortCampaigns orders campaigns by status priority ascending, ties broken
// by start date descending (most recent first). The sort is stable so equal
// entries keep backend order. Unknown statuses sink to the end.
func SortCampaigns(campaigns []Campaign) {
	sort.SliceStable(campaigns, func(i, j int) bool {
		pi, ok := campaignPriority[campaigns[i].Status]
		if !ok {
			pi = len(campaignPriority)
		}
		pj, ok := campaignPriority[campaigns[j].Status]
		if !ok {
			pj = len(campaignPriority)
		}
		if pi != pj {
			return pi < pj
		}
		return campaigns[i].StartDate.After(campaigns[j].StartDate)
	})
}

// FilterCampaigns retains campaigns whose name contains query
// (case-insensitive) and whose status is in allowed. An empty query and an
// empty allowed set each match everything. Order is preserved.
func FilterCampaigns(campaigns []Campaign, query string, allowed map[CampaignStatus]bool) []Campaign {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		if len(allowed) > 0 && !allowed[c.Status] {
			continue
		}
		out = append(out, c)
	}
	return out
}
