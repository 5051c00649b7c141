package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

type RegistrationHandler struct {
	registrationService ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registration}
}

type registrationRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	BloodType string `json:"blood_type"`
	Address   string `json:"address"`
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	message, err := h.registrationService.RegisterDonor(
		r.Context(),
		req.Email, req.FirstName, req.LastName, req.Phone, req.Address,
		domain.BloodType(req.BloodType),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, message)
		return
	}

	writeData(w, http.StatusCreated, message, nil)
}
