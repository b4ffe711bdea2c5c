package entity

// AvailabilityResult is the normalized outcome of a single availability
// lookup. Transport failures are folded into Success/Error; the result never
// carries a raw upstream status.
type AvailabilityResult struct {
	Success        bool     `json:"success"`
	AvailableTimes []string `json:"available_times"`
	Error          string   `json:"error,omitempty"`
}

// DayAvailability is one scanned day that has at least one bookable time.
// Times keep the order the upstream service returned them in.
type DayAvailability struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
