package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"adrd-care-system/internal/domain/entity"
	domainRepo "adrd-care-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// User-facing error messages. Raw upstream statuses are logged, never shown.
const (
	ErrMsgServiceUnavailable = "Service temporarily unavailable"
	ErrMsgFetchAvailability  = "Unable to fetch availability"
	ErrMsgUnexpected         = "An unexpected error occurred"
)

type availabilityRepository struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewAvailabilityRepository creates an availability client against the
// external scheduling service. timeout bounds each lookup; there are no
// retries at this layer.
func NewAvailabilityRepository(baseURL string, httpClient *http.Client, log *logrus.Logger) domainRepo.AvailabilityRepository {
	return &availabilityRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

type availabilityPayload struct {
	AvailableTimes []string `json:"available_times"`
}

func (r *availabilityRepository) GetAvailability(ctx context.Context, doctorID, date string) *entity.AvailabilityResult {
	endpoint := fmt.Sprintf("%s/doctor/availability?%s", r.baseURL, url.Values{
		"doctor_id": {doctorID},
		"date":      {date},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.log.Errorf("Unexpected error building availability request for doctor %s: %+v", doctorID, err)
		return &entity.AvailabilityResult{Success: false, Error: ErrMsgUnexpected}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			r.log.Errorf("Timeout while fetching availability for doctor %s on %s", doctorID, date)
			return &entity.AvailabilityResult{Success: false, Error: ErrMsgServiceUnavailable}
		}
		r.log.Errorf("Unexpected error fetching availability for doctor %s on %s: %+v", doctorID, date, err)
		return &entity.AvailabilityResult{Success: false, Error: ErrMsgUnexpected}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.log.Errorf("HTTP error %d while fetching availability for doctor %s on %s", resp.StatusCode, doctorID, date)
		return &entity.AvailabilityResult{Success: false, Error: ErrMsgFetchAvailability}
	}

	var payload availabilityPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		r.log.Errorf("Failed to decode availability response for doctor %s on %s: %+v", doctorID, date, err)
		return &entity.AvailabilityResult{Success: false, Error: ErrMsgUnexpected}
	}

	// Absent field means no slots, not an error.
	times := payload.AvailableTimes
	if times == nil {
		times = []string{}
	}

	return &entity.AvailabilityResult{Success: true, AvailableTimes: times}
}

// isTimeout distinguishes deadline expiry from other transport failures.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
