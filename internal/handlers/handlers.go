package handlers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/roamdrive/rental-reservation-system/internal/model"
	"github.com/roamdrive/rental-reservation-system/internal/reservation"
	"github.com/roamdrive/rental-reservation-system/internal/service"
	"github.com/roamdrive/rental-reservation-system/internal/wizard"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	wizardService service.WizardService
}

// NewHandler creates a new Handler instance
func NewHandler(wizardService service.WizardService) *Handler {
	return &Handler{
		wizardService: wizardService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// CreateSessionRequest starts a wizard session for one vehicle.
type CreateSessionRequest struct {
	VehicleID string `json:"vehicleId"`
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.VehicleID == "" {
		respondError(w, http.StatusBadRequest, "Vehicle ID is required")
		return
	}

	snap, err := h.wizardService.StartSession(r.Context(), req.VehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	snap, err := h.wizardService.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// UpdateSelection handles PUT /api/sessions/{id}/selection
func (h *Handler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var sel model.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	snap, err := h.wizardService.UpdateSelection(r.Context(), sessionID, sel)
	if err != nil {
		respondWizardError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// Advance handles POST /api/sessions/{id}/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := h.wizardService.Advance(r.Context(), sessionID)
	if err != nil {
		respondWizardError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Back handles POST /api/sessions/{id}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	snap, err := h.wizardService.Back(r.Context(), sessionID)
	if err != nil {
		respondWizardError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// GetQuote handles GET /api/sessions/{id}/quote
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	quote, err := h.wizardService.Quote(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// EndSession handles DELETE /api/sessions/{id}
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.wizardService.EndSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Session ended"})
}

// GetLocations handles GET /api/locations
func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations := h.wizardService.Locations(r.Context())
	respondJSON(w, http.StatusOK, locations)
}

// GetDocument handles GET /api/sessions/{id}/document
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	filename, data, err := h.wizardService.Document(r.Context(), sessionID)
	if err != nil {
		var dlErr *reservation.DownloadError
		if errors.As(err, &dlErr) {
			respondError(w, downloadStatus(dlErr), dlErr.Message())
			return
		}
		if errors.Is(err, wizard.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Session not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func downloadStatus(err *reservation.DownloadError) int {
	switch err.Kind {
	case reservation.DownloadMissingID:
		return http.StatusBadRequest
	case reservation.DownloadNoResponse:
		return http.StatusBadGateway
	case reservation.DownloadRejected:
		return err.Status
	default:
		return http.StatusInternalServerError
	}
}

func respondWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrNotFound):
		respondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, "A submission is already in progress")
	case errors.Is(err, wizard.ErrSessionClosed):
		respondError(w, http.StatusGone, "Session is closed")
	case errors.Is(err, wizard.ErrAlreadyConfirmed):
		respondError(w, http.StatusConflict, "Session is already confirmed")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
