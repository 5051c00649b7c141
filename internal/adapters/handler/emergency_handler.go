package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hemolink/donation-service/internal/adapters/middleware"
	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

type EmergencyHandler struct {
	emergencies ports.EmergencyService
}

func NewEmergencyHandler(emergencies ports.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{emergencies: emergencies}
}

type emergencyRequest struct {
	BloodType string    `json:"blood_type"`
	NeededBy  time.Time `json:"needed_by"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
}

// Create submits an emergency blood request for staff review.
func (h *EmergencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	personID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || personID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req emergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.BloodType == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "blood_type and phone are required")
		return
	}

	created, err := h.emergencies.Create(r.Context(), domain.Request{
		AppointmentDate: req.NeededBy,
		Person: domain.PersonRef{
			ID:        personID,
			Name:      req.Name,
			Phone:     req.Phone,
			BloodType: req.BloodType,
			Address:   req.Address,
		},
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Emergency request submitted", created)
}

// Mine lists the requester's emergency requests with display state.
func (h *EmergencyHandler) Mine(w http.ResponseWriter, r *http.Request) {
	personID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || personID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	views, err := h.emergencies.ListMine(r.Context(), personID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "OK", ListData{Items: views, Total: len(views)})
}

// Cancel withdraws a pending emergency request.
func (h *EmergencyHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	if err := h.emergencies.Cancel(r.Context(), personID, requestID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Emergency request withdrawn", nil)
}
