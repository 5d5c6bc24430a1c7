package types

import "github.com/google/uuid"

// AssistantRequest is the inbound payload for the assistant route. The
// itinerary travels with the request; the service never keeps per-session
// state between calls.
type AssistantRequest struct {
	TripID    *uuid.UUID `json:"trip_id,omitempty"`
	Message   string     `json:"message"`
	Itinerary Itinerary  `json:"itinerary"`
}

// AssistantResponse is what the assistant route returns: the (possibly
// updated) itinerary, a conversational reply, follow-up suggestions, and how
// many instructions actually landed.
type AssistantResponse struct {
	Reply        string    `json:"reply"`
	Itinerary    Itinerary `json:"itinerary"`
	Suggestions  []string  `json:"suggestions"`
	AppliedCount int       `json:"applied_count"`
	Intent       Intent    `json:"intent"`
}
