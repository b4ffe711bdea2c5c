package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adrd-care-system/internal/domain/entity"
	"adrd-care-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// DefaultScanWindowDays is the scan window used when the caller does not
// supply one.
const DefaultScanWindowDays = 5

type AvailabilityScanUsecase interface {
	// ScanNextDays walks numDays consecutive calendar days starting at
	// startDate (inclusive) and returns the days that have at least one
	// available time, in chronological order. Per-day failures are logged
	// in aggregate and never abort the scan.
	ScanNextDays(ctx context.Context, doctorID, startDate string, numDays int) []entity.DayAvailability
}

type availabilityScanUsecase struct {
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
}

func NewAvailabilityScanUsecase(
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
) AvailabilityScanUsecase {
	return &availabilityScanUsecase{
		log:              log,
		availabilityRepo: availabilityRepo,
	}
}

func (u *availabilityScanUsecase) ScanNextDays(ctx context.Context, doctorID, startDate string, numDays int) []entity.DayAvailability {
	if numDays <= 0 {
		numDays = DefaultScanWindowDays
	}

	current, err := time.Parse(entity.DateFormat, startDate)
	if err != nil {
		u.log.Warnf("Invalid scan start date %q for doctor %s: %+v", startDate, doctorID, err)
		return nil
	}

	var availableDays []entity.DayAvailability
	var errors []string

	for i := 0; i < numDays; i++ {
		dateStr := current.Format(entity.DateFormat)
		availability := u.availabilityRepo.GetAvailability(ctx, doctorID, dateStr)

		if availability.Success {
			// Days with zero availability are dropped, not reported.
			if len(availability.AvailableTimes) > 0 {
				availableDays = append(availableDays, entity.DayAvailability{
					Date:  dateStr,
					Times: availability.AvailableTimes,
				})
			}
		} else {
			errors = append(errors, fmt.Sprintf("Error checking %s: %s", dateStr, availability.Error))
		}

		current = current.AddDate(0, 0, 1)
	}

	if len(errors) > 0 {
		u.log.Warnf("Errors while checking availability: %s", strings.Join(errors, "; "))
	}

	return availableDays
}
