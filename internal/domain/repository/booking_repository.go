package repository

import (
	"context"

	"adrd-care-system/internal/domain/entity"
)

// BookingRepository submits booking requests to the external scheduling
// service. Implementations fold every transport failure into the returned
// outcome; callers never receive an error.
type BookingRepository interface {
	// Book attempts to book the requested slot. Incomplete requests are
	// rejected without a network call; slot conflicts carry a fresh list of
	// alternatives for the same doctor/date.
	Book(ctx context.Context, details *entity.BookingRequest) *entity.BookingOutcome
}
