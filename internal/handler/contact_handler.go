package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brainscroller/site/internal/model"
	"github.com/brainscroller/site/internal/service"
)

// maxBodyBytes caps the contact request body.
const maxBodyBytes = 1 << 20

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitResponse struct {
	Success bool `json:"success"`
}

// Submit handles POST /api/contact.
// name and message are required; email and subject are optional.
// A malformed email is not rejected here, it only suppresses Reply-To.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var sub model.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.contactService.Submit(r.Context(), sub)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	case errors.Is(err, service.ErrDelivery):
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{Success: true})
}
