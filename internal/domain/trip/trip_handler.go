package trip

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

// Handler exposes itinerary CRUD over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type saveItineraryRequest struct {
	UserID   uuid.UUID       `json:"user_id"`
	Title    string          `json:"title"`
	Document types.Itinerary `json:"document"`
}

// SaveItinerary handles POST /v1/trips.
func (h *Handler) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	var req saveItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.SaveItinerary(r.Context(), req.UserID, req.Title, req.Document)
	if err != nil {
		h.respondError(w, r, err, "failed to save itinerary")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// GetItinerary handles GET /v1/trips/{id}.
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	saved, err := h.service.GetItinerary(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "failed to fetch itinerary")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// UpdateItinerary handles PUT /v1/trips/{id}.
func (h *Handler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var document types.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateItinerary(r.Context(), id, document); err != nil {
		h.respondError(w, r, err, "failed to update itinerary")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListItineraries handles GET /v1/trips?user_id=...&page=...&limit=...
func (h *Handler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.service.ListItineraries(r.Context(), userID, page, limit)
	if err != nil {
		h.respondError(w, r, err, "failed to list itineraries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"itineraries": results})
}

// DeleteItinerary handles DELETE /v1/trips/{id}.
func (h *Handler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	if err := h.service.DeleteItinerary(r.Context(), id); err != nil {
		h.respondError(w, r, err, "failed to delete itinerary")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		writeError(w, http.StatusNotFound, "itinerary not found")
	case errors.Is(err, types.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), message, slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, message)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
