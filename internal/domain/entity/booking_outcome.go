package entity

// BookingOutcome is the normalized result of a booking attempt.
//
// On success, Data carries the upstream confirmation payload untouched.
// On a slot conflict, Alternatives carries a fresh availability fetch for the
// same doctor/date (empty list, never nil, if that fetch also failed).
type BookingOutcome struct {
	Success      bool                   `json:"success"`
	Data         map[string]interface{} `json:"data,omitempty"`
	Error        string                 `json:"error,omitempty"`
	Alternatives []string               `json:"alternatives,omitempty"`
	Conflict     bool                   `json:"-"`
}
