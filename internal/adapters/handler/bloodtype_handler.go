package handler

import (
	"net/http"

	"github.com/hemolink/donation-service/internal/core/domain"
)

// BloodTypeHandler serves the informational blood-type screens. The data is
// static and computed in the domain; no storage behind it.
type BloodTypeHandler struct{}

func NewBloodTypeHandler() *BloodTypeHandler {
	return &BloodTypeHandler{}
}

func (h *BloodTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types := domain.BloodTypes()
	writeData(w, http.StatusOK, "OK", ListData{Items: types, Total: len(types)})
}

func (h *BloodTypeHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	t := domain.BloodType(r.PathValue("type"))
	compat, ok := domain.CompatibilityFor(t)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown blood type")
		return
	}
	writeData(w, http.StatusOK, "OK", compat)
}
