package domain

import "time"

// CampaignRef is the campaign data carried on a request. Reference data
// only, never mutated here.
type CampaignRef struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	BannerURL      string    `json:"banner_url,omitempty"`
	CollectionDate time.Time `json:"collection_date"`
}

// PersonRef identifies the donor or requester attached to a request.
type PersonRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	BloodType string `json:"blood_type"`
	Address   string `json:"address,omitempty"`
}

// Request is a donation appointment or an emergency blood request as stored
// by the platform. Status transitions happen through the services; everything
// derived for display (bucket, label, allowed actions) is computed from a
// snapshot of this struct.
type Request struct {
	ID     string `json:"id"`
	Flow   Flow   `json:"flow"`
	Status Status `json:"status"`

	// AppointmentDate is the date the bucketing and the cancel lead-time
	// rule key on. For emergency requests it is the needed-by date.
	AppointmentDate time.Time `json:"appointment_date"`

	Campaign  CampaignRef `json:"campaign,omitempty"`
	Person    PersonRef   `json:"person,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
