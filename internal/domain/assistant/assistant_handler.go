package assistant

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tripweaver/tripweaver-api/internal/domain/trip"
	"github.com/tripweaver/tripweaver-api/internal/types"
)

// Handler exposes the assistant pipeline over HTTP.
type Handler struct {
	service Service
	trips   trip.Service
	logger  *slog.Logger
}

func NewHandler(service Service, trips trip.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		trips:   trips,
		logger:  logger,
	}
}

// ProcessMessage handles POST /v1/assistant/message. When the request names a
// stored trip and changes were applied, the updated document is persisted;
// persistence failure is logged but does not fail the response, since the
// caller already has the updated itinerary in hand.
func (h *Handler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req types.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := h.service.ProcessMessage(r.Context(), req.Itinerary, req.Message)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "assistant pipeline failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "something went wrong handling your request")
		return
	}

	if req.TripID != nil && resp.AppliedCount > 0 {
		if err := h.trips.UpdateItinerary(r.Context(), *req.TripID, resp.Itinerary); err != nil {
			h.logger.WarnContext(r.Context(), "failed to persist updated itinerary",
				slog.String("trip_id", req.TripID.String()), slog.Any("error", err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
