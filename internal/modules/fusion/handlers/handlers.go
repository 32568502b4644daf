// Package handlers provides HTTP handlers for fusion policy decisions.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finsentinel/sentinel/internal/modules/fusion"
)

const maxBodyBytes = 64 << 10

// Handler handles fusion HTTP requests
type Handler struct {
	service  *fusion.Service
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler creates a new fusion handler
func NewHandler(service *fusion.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		log:      log.With().Str("handler", "fusion").Logger(),
	}
}

// EvaluateResponse is the body of a successful evaluation
type EvaluateResponse struct {
	OK bool `json:"ok"`
	fusion.Result
}

// ProfileResponse describes the active profile
type ProfileResponse struct {
	OK            bool           `json:"ok"`
	Profile       string         `json:"profile"`
	Details       fusion.Profile `json:"details"`
	ValidProfiles []string       `json:"valid_profiles"`
	Timestamp     time.Time      `json:"ts"`
}

// ProfileRequest switches the active profile
type ProfileRequest struct {
	Profile string `json:"profile" validate:"required"`
}

// HandleEvaluate handles POST /api/fusion/evaluate
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var input fusion.Input
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Evaluate(input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, EvaluateResponse{OK: true, Result: result})
}

// HandleGetProfile handles GET /api/fusion/profile
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, h.service.ActiveProfile())
}

// HandleSetProfile handles PUT /api/fusion/profile
func (h *Handler) HandleSetProfile(w http.ResponseWriter, r *http.Request) {
	var request ProfileRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.validate.Struct(request); err != nil {
		h.writeError(w, http.StatusBadRequest, "profile field is required")
		return
	}

	profile, err := h.service.SetProfile(request.Profile)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeProfile(w, profile)
}

// HandleListProfiles handles GET /api/fusion/profiles
func (h *Handler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"profiles": h.service.Profiles(),
	})
}

func (h *Handler) writeProfile(w http.ResponseWriter, profile fusion.Profile) {
	h.writeJSON(w, http.StatusOK, ProfileResponse{
		OK:            true,
		Profile:       profile.Name,
		Details:       profile,
		ValidProfiles: fusion.ProfileNames(),
		Timestamp:     time.Now().UTC(),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, fusion.ErrInvalidInput) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Fusion request failed")
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
