package types

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is the root travel document the assistant operates on. It is
// treated as untrusted input: any field may be missing or empty, and
// consumers must not assume presence of optional fields.
type Itinerary struct {
	Destinations []Destination `json:"destinations,omitempty"`
	Budget       *Budget       `json:"budget,omitempty"`
	Schedule     Schedule      `json:"schedule"`
}

// Destination names a place the trip visits and how long it stays there.
type Destination struct {
	Name string `json:"name"`
	Days int    `json:"days,omitempty"`
}

// Budget summarizes trip cost. Breakdown keys are free-form category names.
type Budget struct {
	Total        string            `json:"total,omitempty"`
	Breakdown    map[string]string `json:"breakdown,omitempty"`
	DailyAverage string            `json:"dailyAverage,omitempty"`
}

// Schedule holds the ordered day plan. Day numbers are a contiguous 1-based
// sequence matching the requested trip length.
type Schedule struct {
	Days []Day `json:"days"`
}

// Day is one day of the trip. Activities are kept ordered by wall-clock
// time ascending; any insertion must restore that order.
type Day struct {
	Day         int        `json:"day"`
	Date        string     `json:"date,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Title       string     `json:"title,omitempty"`
	Activities  []Activity `json:"activities"`
}

// Activity is a single scheduled item. Name is the human-facing identifier
// used for fuzzy matching and is not guaranteed unique within a day. Time and
// Cost are free-text ("9:00 AM", "$25", "Free").
type Activity struct {
	Time        string `json:"time,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Tips        string `json:"tips,omitempty"`
	Category    string `json:"category,omitempty"`
}

// SavedItinerary is a persisted itinerary row.
type SavedItinerary struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Document  Itinerary `json:"document"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
