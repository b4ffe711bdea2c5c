package repository

import (
	"context"

	"adrd-care-system/internal/domain/entity"
)

// AvailabilityRepository fetches bookable time slots from the external
// scheduling service. Implementations fold every transport failure into the
// returned result; callers never receive an error.
type AvailabilityRepository interface {
	// GetAvailability fetches available times for a doctor on a date.
	// doctorID must be non-empty and date must already be in MM/DD/YYYY form.
	GetAvailability(ctx context.Context, doctorID, date string) *entity.AvailabilityResult
}
