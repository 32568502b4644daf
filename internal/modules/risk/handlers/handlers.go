// Package handlers provides HTTP handlers for portfolio risk simulation.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/finsentinel/sentinel/internal/modules/montecarlo"
)

const (
	maxBodyBytes = 1 << 20

	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

// Handler handles risk simulation HTTP requests
type Handler struct {
	service *montecarlo.Service
	log     zerolog.Logger
}

// NewHandler creates a new risk simulation handler
func NewHandler(service *montecarlo.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "risk").Logger(),
	}
}

// ParamsResponse describes the derived sampling parameters of one symbol
type ParamsResponse struct {
	Symbol               string  `json:"symbol"`
	DailyDrift           float64 `json:"dailyDrift"`
	DailyVolatility      float64 `json:"dailyVolatility"`
	AnnualizedDrift      float64 `json:"annualizedDrift"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
}

// HandleSimulate handles POST /api/risk/simulate
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var request montecarlo.PortfolioInput
	if err := h.decode(w, r, &request); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.service.Simulate(r.Context(), request)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeResponse(w, r, http.StatusOK, report)
}

// HandleSimulateBatch handles POST /api/risk/simulate/batch
func (h *Handler) HandleSimulateBatch(w http.ResponseWriter, r *http.Request) {
	var request montecarlo.BatchRequest
	if err := h.decode(w, r, &request); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	startTime := time.Now()
	response, err := h.service.SimulateBatch(r.Context(), request.Portfolios)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.log.Info().
		Int("portfolios", len(request.Portfolios)).
		Int("errors", len(response.Errors)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Batch request served")

	h.writeResponse(w, r, http.StatusOK, response)
}

// HandleGetParams handles GET /api/risk/params/{symbol}
func (h *Handler) HandleGetParams(w http.ResponseWriter, r *http.Request) {
	params, err := h.service.Params(chi.URLParam(r, "symbol"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeResponse(w, r, http.StatusOK, ParamsResponse{
		Symbol:               params.Symbol,
		DailyDrift:           params.DailyDrift,
		DailyVolatility:      params.DailyVolatility,
		AnnualizedDrift:      params.AnnualizedDrift(),
		AnnualizedVolatility: params.AnnualizedVolatility(),
	})
}

// HandleGetDemoCases handles GET /api/risk/demo-cases
func (h *Handler) HandleGetDemoCases(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, r, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"cases": h.service.DemoCases(),
	})
}

// HandleGetDemoReports handles GET /api/risk/demo-cases/reports
func (h *Handler) HandleGetDemoReports(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, r, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"reports": h.service.Cache().All(),
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps service errors onto HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, montecarlo.ErrInvalidRequest):
		h.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.log.Warn().Err(err).Msg("Simulation did not finish in time")
		h.writeError(w, r, http.StatusGatewayTimeout, "Simulation timed out")
	default:
		h.log.Error().Err(err).Msg("Simulation failed")
		h.writeError(w, r, http.StatusInternalServerError, "Simulation failed: "+err.Error())
	}
}

// writeResponse encodes data as msgpack when the client asks for it and as
// JSON otherwise. Both encodings use the json field names. The body is
// encoded before the status is written so an encoding failure still reaches
// the client as a 500.
func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	contentType := contentTypeJSON
	encode := encodeJSON
	if acceptsMsgpack(r) {
		contentType = contentTypeMsgpack
		encode = encodeMsgpack
	}

	body, err := encode(data)

	if err != nil {
		h.log.Error().Err(err).Str("content_type", contentType).Msg("Failed to encode response")
		contentType = contentTypeJSON
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.log.Debug().Err(err).Msg("Failed to write response")
	}
}

func encodeJSON(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeMsgpack(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeResponse(w, r, status, map[string]string{
		"error": message,
	})
}

func acceptsMsgpack(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, contentTypeMsgpack) || strings.Contains(accept, "application/x-msgpack")
}
