package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hemolink/donation-service/internal/adapters/middleware"
	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

type DonationHandler struct {
	donations ports.DonationService
}

func NewDonationHandler(donations ports.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type bookRequest struct {
	CampaignID      string    `json:"campaign_id"`
	AppointmentDate time.Time `json:"appointment_date"`
}

// Book creates a pending donation appointment for the authenticated donor.
func (h *DonationHandler) Book(w http.ResponseWriter, r *http.Request) {
	personID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || personID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.CampaignID == "" {
		writeError(w, http.StatusBadRequest, "campaign_id is required")
		return
	}

	created, err := h.donations.Book(r.Context(), personID, req.CampaignID, req.AppointmentDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Appointment requested", created)
}

// MyRequests lists the donor's requests for one tab. Query parameters:
// bucket=upcoming|history (default upcoming), statuses=a,b,c multi-select.
func (h *DonationHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	personID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || personID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	bucket := domain.BucketUpcoming
	switch r.URL.Query().Get("bucket") {
	case "", string(domain.BucketUpcoming):
	case string(domain.BucketHistory):
		bucket = domain.BucketHistory
	default:
		writeError(w, http.StatusBadRequest, "bucket must be upcoming or history")
		return
	}

	allowed := parseStatusSet(r.URL.Query().Get("statuses"))

	views, err := h.donations.ListMyRequests(r.Context(), personID, bucket, allowed)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", ListData{Items: views, Total: len(views)})
}

// Counts annotates the filter menu: per-status totals for one side of the
// tab bar (past=true for history).
func (h *DonationHandler) Counts(w http.ResponseWriter, r *http.Request) {
	personID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || personID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	past := r.URL.Query().Get("past") == "true"
	counts, err := h.donations.CountsByStatus(r.Context(), personID, past)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", counts)
}

// Cancel cancels a donation appointment, subject to the eligibility rules.
func (h *DonationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	personID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || personID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	requestID := r.PathValue("requestId")
	if requestID == "" {
		writeError(w, http.StatusBadRequest, "missing request id")
		return
	}

	if err := h.donations.Cancel(r.Context(), personID, requestID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Appointment cancelled", nil)
}

func parseStatusSet(raw string) domain.StatusSet {
	if raw == "" {
		return nil
	}
	var statuses []domain.Status
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			statuses = append(statuses, domain.Status(part))
		}
	}
	return domain.NewStatusSet(statuses...)
}
