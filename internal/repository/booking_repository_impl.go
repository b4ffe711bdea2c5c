package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"adrd-care-system/internal/domain/entity"
	domainRepo "adrd-care-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// ErrMsgSlotTaken is returned when the upstream rejects a booking because the
// slot was taken between the availability check and the booking attempt.
const ErrMsgSlotTaken = "Time slot no longer available"

type bookingRepository struct {
	baseURL          string
	httpClient       *http.Client
	log              *logrus.Logger
	availabilityRepo domainRepo.AvailabilityRepository
}

// NewBookingRepository creates a booking client against the external
// scheduling service. On a slot conflict it fetches fresh alternatives
// through availabilityRepo.
func NewBookingRepository(baseURL string, httpClient *http.Client, log *logrus.Logger, availabilityRepo domainRepo.AvailabilityRepository) domainRepo.BookingRepository {
	return &bookingRepository{
		baseURL:          baseURL,
		httpClient:       httpClient,
		log:              log,
		availabilityRepo: availabilityRepo,
	}
}

type bookingErrorPayload struct {
	Detail string `json:"detail"`
}

func (r *bookingRepository) Book(ctx context.Context, details *entity.BookingRequest) *entity.BookingOutcome {
	// Reject incomplete requests before any network call.
	if missing := details.MissingFields(); len(missing) > 0 {
		return &entity.BookingOutcome{
			Success: false,
			Error:   fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	body, err := json.Marshal(details)
	if err != nil {
		r.log.Errorf("Error encoding booking request for doctor %s: %+v", details.DoctorID, err)
		return &entity.BookingOutcome{Success: false, Error: ErrMsgUnexpected}
	}

	endpoint := fmt.Sprintf("%s/appointments/book", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		r.log.Errorf("Error building booking request for doctor %s: %+v", details.DoctorID, err)
		return &entity.BookingOutcome{Success: false, Error: ErrMsgUnexpected}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			r.log.Error("Timeout while booking appointment")
			return &entity.BookingOutcome{Success: false, Error: ErrMsgServiceUnavailable}
		}
		r.log.Errorf("Error booking appointment: %+v", err)
		return &entity.BookingOutcome{Success: false, Error: ErrMsgUnexpected}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var confirmation map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
			r.log.Errorf("Failed to decode booking confirmation for doctor %s: %+v", details.DoctorID, err)
			return &entity.BookingOutcome{Success: false, Error: ErrMsgUnexpected}
		}
		r.log.Infof("Successfully booked appointment for %s on %s at %s", details.DoctorID, details.PreferredDate, details.PreferredTime)
		return &entity.BookingOutcome{Success: true, Data: confirmation}
	}

	var errPayload bookingErrorPayload
	if err := json.NewDecoder(resp.Body).Decode(&errPayload); err != nil {
		r.log.Warnf("Booking attempt failed with status %d and undecodable body", resp.StatusCode)
	} else {
		r.log.Infof("Booking attempt failed: status=%d detail=%q", resp.StatusCode, errPayload.Detail)
	}

	// Slot taken between availability check and booking attempt.
	if resp.StatusCode == http.StatusConflict {
		r.log.Warn("Requested time slot conflict - fetching alternatives")
		alternatives := []string{}
		if fresh := r.availabilityRepo.GetAvailability(ctx, details.DoctorID, details.PreferredDate); fresh.Success {
			alternatives = fresh.AvailableTimes
		}
		return &entity.BookingOutcome{
			Success:      false,
			Conflict:     true,
			Error:        ErrMsgSlotTaken,
			Alternatives: alternatives,
		}
	}

	errMsg := errPayload.Detail
	if errMsg == "" {
		errMsg = "Booking failed"
	}
	return &entity.BookingOutcome{Success: false, Error: errMsg}
}
