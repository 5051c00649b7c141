package handler

import (
	"net/http"
	"strings"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

type CampaignHandler struct {
	campaigns ports.CampaignService
}

func NewCampaignHandler(campaigns ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// List serves the campaign browser. Query parameters: search (name
// substring), statuses=active,not_started,ended multi-select.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	var statuses []domain.CampaignStatus
	if raw := r.URL.Query().Get("statuses"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, domain.CampaignStatus(part))
			}
		}
	}

	campaigns, err := h.campaigns.List(r.Context(), query, statuses)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", ListData{Items: campaigns, Total: len(campaigns)})
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignId")
	if campaignID == "" {
		writeError(w, http.StatusBadRequest, "missing campaign id")
		return
	}

	campaign, err := h.campaigns.Get(r.Context(), campaignID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", campaign)
}
