package dto

// Request DTOs

type ChatRequest struct {
	Message string                 `json:"message" validate:"required"`
	History []HistoryTurn          `json:"history,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

type HistoryTurn struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Response DTOs

// ChatResponse is the unit returned per negotiation turn. Suggestions carry
// the machine-readable slot data; Response carries the conversational text.
type ChatResponse struct {
	Response    string       `json:"response"`
	Agent       string       `json:"agent"`
	Suggestions *Suggestions `json:"suggestions,omitempty"`
}

// Suggestions is either a flat list of times for one date (same-day offer)
// or a list of days (multi-day offer). Lists are always complete; display
// truncation happens only in the response text.
type Suggestions struct {
	AvailableTimes []string        `json:"available_times,omitempty"`
	Date           string          `json:"date,omitempty"`
	AvailableDays  []DaySuggestion `json:"available_days,omitempty"`
}

type DaySuggestion struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
