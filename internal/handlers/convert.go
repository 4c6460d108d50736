package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BerylCAtieno/pdf-to-json/internal/middleware"
	"github.com/BerylCAtieno/pdf-to-json/internal/models"
	"github.com/BerylCAtieno/pdf-to-json/internal/services"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

const MethodNotAllowedMessage = "Only POST requests allowed"

type ConvertHandler struct {
	service        services.ConversionService
	logger         *utils.Logger
	maxRequestSize int64
}

func NewConvertHandler(service services.ConversionService, logger *utils.Logger, maxRequestSize int64) *ConvertHandler {
	return &ConvertHandler{
		service:        service,
		logger:         logger,
		maxRequestSize: maxRequestSize,
	}
}

// Convert handles every method on the convert route so non-POST callers get
// the JSON 405 body rather than the router's bare status.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.respondJSON(w, http.StatusMethodNotAllowed, models.MessageResponse{Message: MethodNotAllowedMessage})
		return
	}

	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var req models.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, r, &utils.AppError{
				StatusCode: http.StatusRequestEntityTooLarge,
				Message:    "Request body too large",
				Err:        err,
			})
			return
		}
		h.respondError(w, r, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request body",
			Err:        err,
		})
		return
	}

	resp, err := h.service.Convert(r.Context(), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *ConvertHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, models.HealthResponse{Status: "healthy"})
}

func (h *ConvertHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *ConvertHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := services.ProcessingErrorMessage

	if appErr, ok := utils.AsAppError(err); ok {
		status = appErr.StatusCode
		message = appErr.Message
	}

	h.logger.Error("Request error",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"status", status,
		"error", err)

	h.respondJSON(w, status, models.ErrorResponse{Error: message})
}
