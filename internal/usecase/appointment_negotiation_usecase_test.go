package usecase

import (
	"context"
	"strings"
	"testing"

	"adrd-care-system/config"
	"adrd-care-system/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo returns a canned outcome and records requests.
type fakeBookingRepo struct {
	outcome *entity.BookingOutcome
	calls   int
}

func (f *fakeBookingRepo) Book(_ context.Context, _ *entity.BookingRequest) *entity.BookingOutcome {
	f.calls++
	return f.outcome
}

func appointmentRecord(details *entity.BookingRequest) *entity.IntentRecord {
	return &entity.IntentRecord{
		Agent:   entity.AgentAppointment,
		Intent:  "book_appointment",
		Details: details,
	}
}

func negotiationFixture(availability *fakeAvailabilityRepo, booking *fakeBookingRepo) AppointmentNegotiationUsecase {
	log := testLogger()
	return NewAppointmentNegotiationUsecase(
		log,
		config.SchedulingConfig{ScanWindowDays: 5},
		availability,
		booking,
		NewAvailabilityScanUsecase(log, availability),
		nil,
		nil,
	)
}

func TestAppointmentNegotiationUsecase_Negotiate(t *testing.T) {
	t.Run("missing fields end the turn with no network activity", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{}
		booking := &fakeBookingRepo{}
		uc := negotiationFixture(availability, booking)

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "12/15/2024",
		}))

		assert.Equal(t, "I need these additional details to book your appointment: preferred_time. Please provide them.", resp.Response)
		assert.Equal(t, entity.ResponderAppointment, resp.Agent)
		assert.Zero(t, availability.calls)
		assert.Zero(t, booking.calls)
	})

	t.Run("classifier-reported missing fields are echoed as-is", func(t *testing.T) {
		uc := negotiationFixture(&fakeAvailabilityRepo{}, &fakeBookingRepo{})

		record := appointmentRecord(nil)
		record.MissingFields = []string{"doctor_id", "preferred_date"}
		resp := uc.Negotiate(context.Background(), record)

		assert.Contains(t, resp.Response, "doctor_id, preferred_date")
	})

	t.Run("malformed date is rejected before the availability check", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{}
		uc := negotiationFixture(availability, &fakeBookingRepo{})

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "2024-12-15",
			PreferredTime: "09:00 AM",
		}))

		assert.Equal(t, msgInvalidFormats, resp.Response)
		assert.Zero(t, availability.calls)
	})

	t.Run("open requested slot is booked and confirmed", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{
			"12/15/2024": {Success: true, AvailableTimes: []string{"09:00 AM", "10:00 AM"}},
		}}
		booking := &fakeBookingRepo{outcome: &entity.BookingOutcome{Success: true}}
		uc := negotiationFixture(availability, booking)

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			DoctorName:    "Smith",
			PreferredDate: "12/15/2024",
			PreferredTime: "09:00 AM",
		}))

		assert.Equal(t, "Great! Your appointment with Dr. Smith is confirmed for 12/15/2024 at 09:00 AM.", resp.Response)
		assert.Equal(t, 1, booking.calls)
		assert.Nil(t, resp.Suggestions)
	})

	t.Run("requested time absent offers same-day alternatives in order", func(t *testing.T) {
		times := []string{"08:00 AM", "10:00 AM", "11:00 AM", "01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM"}
		availability := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{
			"12/15/2024": {Success: true, AvailableTimes: times},
		}}
		booking := &fakeBookingRepo{}
		uc := negotiationFixture(availability, booking)

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "12/15/2024",
			PreferredTime: "09:00 AM",
		}))

		assert.Zero(t, booking.calls)
		assert.Contains(t, resp.Response, "I see that 09:00 AM isn't available on 12/15/2024")
		// The text shows at most five times; the payload carries all seven.
		assert.Equal(t, 5, strings.Count(resp.Response, "- "))
		assert.NotContains(t, resp.Response, "03:00 PM")
		require.NotNil(t, resp.Suggestions)
		assert.Equal(t, times, resp.Suggestions.AvailableTimes)
		assert.Equal(t, "12/15/2024", resp.Suggestions.Date)
	})

	t.Run("failed booking falls through to same-day offer without a re-check", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{
			"12/15/2024": {Success: true, AvailableTimes: []string{"09:00 AM", "10:00 AM"}},
		}}
		booking := &fakeBookingRepo{outcome: &entity.BookingOutcome{Success: false, Error: "Booking failed"}}
		uc := negotiationFixture(availability, booking)

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "12/15/2024",
			PreferredTime: "09:00 AM",
		}))

		assert.Equal(t, 1, booking.calls)
		assert.Equal(t, 1, availability.calls)
		require.NotNil(t, resp.Suggestions)
		assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, resp.Suggestions.AvailableTimes)
	})

	t.Run("empty day triggers the multi-day scan", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{
			"12/15/2024": {Success: true, AvailableTimes: []string{}},
			"12/16/2024": {Success: true, AvailableTimes: []string{"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM"}},
			"12/18/2024": {Success: true, AvailableTimes: []string{"02:00 PM"}},
		}}
		uc := negotiationFixture(availability, &fakeBookingRepo{})

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "12/15/2024",
			PreferredTime: "09:00 AM",
		}))

		assert.Contains(t, resp.Response, "no appointments available on 12/15/2024")
		assert.Contains(t, resp.Response, "For 12/16/2024:")
		assert.Contains(t, resp.Response, "For 12/18/2024:")
		// Three times at most per day in the text.
		assert.NotContains(t, resp.Response, "01:00 PM")
		require.NotNil(t, resp.Suggestions)
		require.Len(t, resp.Suggestions.AvailableDays, 2)
		assert.Equal(t, []string{"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM"}, resp.Suggestions.AvailableDays[0].Times)
	})

	t.Run("availability failure yields the generic fallback", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{
			"12/15/2024": {Success: false, Error: "Service temporarily unavailable"},
		}}
		booking := &fakeBookingRepo{}
		uc := negotiationFixture(availability, booking)

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "12/15/2024",
			PreferredTime: "09:00 AM",
		}))

		assert.Equal(t, msgTroubleFinding, resp.Response)
		assert.Zero(t, booking.calls)
		assert.Equal(t, 1, availability.calls)
	})

	t.Run("nothing found anywhere yields the generic fallback", func(t *testing.T) {
		availability := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{}}
		uc := negotiationFixture(availability, &fakeBookingRepo{})

		resp := uc.Negotiate(context.Background(), appointmentRecord(&entity.BookingRequest{
			DoctorID:      "dr_001",
			PreferredDate: "12/15/2024",
			PreferredTime: "09:00 AM",
		}))

		assert.Equal(t, msgTroubleFinding, resp.Response)
		assert.Nil(t, resp.Suggestions)
		// Requested day plus the five-day scan window.
		assert.Equal(t, 6, availability.calls)
	})
}
