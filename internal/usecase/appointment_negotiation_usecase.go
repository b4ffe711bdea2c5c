package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adrd-care-system/config"
	"adrd-care-system/internal/converter"
	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/entity"
	"adrd-care-system/internal/domain/repository"
	"adrd-care-system/internal/service"

	"github.com/sirupsen/logrus"
)

// Conversational texts produced by the negotiation decision tree. The
// wording is fixed; only slot data varies.
const (
	msgTroubleFinding = "I'm having trouble finding available appointments. Would you like to try a different date or see other doctors' availability?"
	msgInvalidFormats = "I couldn't understand the appointment date or time. Please provide the date as MM/DD/YYYY and the time as HH:MM AM/PM."
)

type AppointmentNegotiationUsecase interface {
	// Negotiate runs one negotiation turn for an appointment-intent record
	// and always produces a response; collaborator failures surface as
	// conversational fallbacks, never as errors.
	Negotiate(ctx context.Context, record *entity.IntentRecord) *dto.ChatResponse
}

type appointmentNegotiationUsecase struct {
	log              *logrus.Logger
	cfg              config.SchedulingConfig
	availabilityRepo repository.AvailabilityRepository
	bookingRepo      repository.BookingRepository
	scanUsecase      AvailabilityScanUsecase
	bookingGuard     *service.BookingGuardService
	auditService     service.AuditService
}

func NewAppointmentNegotiationUsecase(
	log *logrus.Logger,
	cfg config.SchedulingConfig,
	availabilityRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	scanUsecase AvailabilityScanUsecase,
	bookingGuard *service.BookingGuardService,
	auditService service.AuditService,
) AppointmentNegotiationUsecase {
	return &appointmentNegotiationUsecase{
		log:              log,
		cfg:              cfg,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		scanUsecase:      scanUsecase,
		bookingGuard:     bookingGuard,
		auditService:     auditService,
	}
}

// Negotiate walks the per-turn state machine:
// INTAKE -> CHECK_REQUESTED_SLOT -> (BOOK | OFFER_SAME_DAY | SCAN_MULTI_DAY) -> RESPOND.
func (u *appointmentNegotiationUsecase) Negotiate(ctx context.Context, record *entity.IntentRecord) *dto.ChatResponse {
	details := record.Details
	if details == nil {
		details = &entity.BookingRequest{}
	}

	// INTAKE: incomplete details end the turn before any network call.
	missing := record.MissingFields
	if len(missing) == 0 {
		missing = details.MissingFields()
	}
	if len(missing) > 0 {
		u.audit(ctx, details, entity.OutcomeMissingFields, false, entity.JSON{"missing_fields": missing})
		return &dto.ChatResponse{
			Response: fmt.Sprintf("I need these additional details to book your appointment: %s. Please provide them.", strings.Join(missing, ", ")),
			Agent:    entity.ResponderAppointment,
		}
	}

	if err := details.ValidateFormats(); err != nil {
		u.log.Warnf("Rejected malformed booking details for doctor %s: %+v", details.DoctorID, err)
		u.audit(ctx, details, entity.OutcomeMissingFields, false, entity.JSON{"reason": "invalid_format"})
		return &dto.ChatResponse{
			Response: msgInvalidFormats,
			Agent:    entity.ResponderAppointment,
		}
	}

	// CHECK_REQUESTED_SLOT
	availability := u.availabilityRepo.GetAvailability(ctx, details.DoctorID, details.PreferredDate)
	if !availability.Success {
		u.audit(ctx, details, entity.OutcomeUpstreamFailure, false, entity.JSON{"error": availability.Error})
		return &dto.ChatResponse{
			Response: msgTroubleFinding,
			Agent:    entity.ResponderAppointment,
		}
	}

	availableTimes := availability.AvailableTimes

	// BOOK_REQUESTED: the asked-for time is open, try to take it. A failed
	// booking falls through to the same-day offer using the availability
	// data already fetched, not a re-check.
	if containsTime(availableTimes, details.PreferredTime) {
		if resp := u.attemptBooking(ctx, details); resp != nil {
			return resp
		}
	}

	// OFFER_SAME_DAY_ALTERNATIVES
	if len(availableTimes) > 0 {
		u.audit(ctx, details, entity.OutcomeSameDayOffered, false, entity.JSON{"offered": len(availableTimes)})
		return &dto.ChatResponse{
			Response: u.sameDayText(details, availableTimes),
			Agent:    entity.ResponderAppointment,
			Suggestions: &dto.Suggestions{
				AvailableTimes: availableTimes,
				Date:           details.PreferredDate,
			},
		}
	}

	// SCAN_MULTI_DAY
	nextDays := u.scanUsecase.ScanNextDays(ctx, details.DoctorID, details.PreferredDate, u.cfg.ScanWindowDays)
	if len(nextDays) > 0 {
		u.audit(ctx, details, entity.OutcomeMultiDayOffered, false, entity.JSON{"days_offered": len(nextDays)})
		return &dto.ChatResponse{
			Response: u.multiDayText(details, nextDays),
			Agent:    entity.ResponderAppointment,
			Suggestions: &dto.Suggestions{
				AvailableDays: converter.DaysToSuggestions(nextDays),
			},
		}
	}

	u.audit(ctx, details, entity.OutcomeNoAvailability, false, nil)
	return &dto.ChatResponse{
		Response: msgTroubleFinding,
		Agent:    entity.ResponderAppointment,
	}
}

// attemptBooking reserves the slot, submits the booking and returns the
// confirmation response on success. A nil return means the caller should
// continue with the alternatives branches.
func (u *appointmentNegotiationUsecase) attemptBooking(ctx context.Context, details *entity.BookingRequest) *dto.ChatResponse {
	if u.bookingGuard != nil {
		if err := u.bookingGuard.Acquire(ctx, details.DoctorID, details.PreferredDate, details.PreferredTime); err != nil {
			if errors.Is(err, service.ErrSlotReserved) {
				u.log.Warnf("Concurrent booking in flight for doctor %s on %s at %s", details.DoctorID, details.PreferredDate, details.PreferredTime)
				return nil
			}
		}
	}

	outcome := u.bookingRepo.Book(ctx, details)
	if !outcome.Success {
		// Free the reservation so the user can retry this slot.
		if u.bookingGuard != nil {
			u.bookingGuard.Release(ctx, details.DoctorID, details.PreferredDate, details.PreferredTime)
		}
		u.log.Infof("Booking attempt failed for doctor %s: %s", details.DoctorID, outcome.Error)
		return nil
	}

	// The successful reservation is left to expire; the slot is now booked
	// upstream anyway.
	u.audit(ctx, details, entity.OutcomeBooked, true, entity.JSON{"time": details.PreferredTime})
	return &dto.ChatResponse{
		Response: fmt.Sprintf("Great! Your appointment with Dr. %s is confirmed for %s at %s.", details.DisplayDoctor(), details.PreferredDate, details.PreferredTime),
		Agent:    entity.ResponderAppointment,
	}
}

// sameDayText lists up to the configured number of times; the suggestions
// payload carries the complete list regardless.
func (u *appointmentNegotiationUsecase) sameDayText(details *entity.BookingRequest, times []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I see that %s isn't available on %s. Here are available times:\n", details.PreferredTime, details.PreferredDate)
	for i, t := range times {
		if i >= u.sameDayLimit() {
			break
		}
		fmt.Fprintf(&sb, "- %s\n", t)
	}
	sb.WriteString("\nWould you like me to book any of these times?")
	return sb.String()
}

// multiDayText shows up to the configured number of days, each with up to
// the configured number of times.
func (u *appointmentNegotiationUsecase) multiDayText(details *entity.BookingRequest, days []entity.DayAvailability) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I apologize, but there are no appointments available on %s. Here are the next available slots:\n\n", details.PreferredDate)
	for i, day := range days {
		if i >= u.multiDayLimit() {
			break
		}
		fmt.Fprintf(&sb, "For %s:\n", day.Date)
		for j, t := range day.Times {
			if j >= u.multiDayTimeLimit() {
				break
			}
			fmt.Fprintf(&sb, "- %s\n", t)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Would you like to book any of these times?")
	return sb.String()
}

func (u *appointmentNegotiationUsecase) audit(ctx context.Context, details *entity.BookingRequest, outcome entity.NegotiationOutcome, booked bool, metadata entity.JSON) {
	if u.auditService == nil {
		return
	}
	// Audit writes must never fail the turn; RecordTurn logs its own errors.
	_ = u.auditService.RecordTurn(ctx, &entity.NegotiationLog{
		DoctorID: details.DoctorID,
		Date:     details.PreferredDate,
		Outcome:  outcome,
		Agent:    entity.ResponderAppointment,
		Booked:   booked,
		Metadata: metadata,
	})
}

func (u *appointmentNegotiationUsecase) sameDayLimit() int {
	if u.cfg.SameDayLimit > 0 {
		return u.cfg.SameDayLimit
	}
	return 5
}

func (u *appointmentNegotiationUsecase) multiDayLimit() int {
	if u.cfg.MultiDayLimit > 0 {
		return u.cfg.MultiDayLimit
	}
	return 3
}

func (u *appointmentNegotiationUsecase) multiDayTimeLimit() int {
	if u.cfg.MultiDayTimeLimit > 0 {
		return u.cfg.MultiDayTimeLimit
	}
	return 3
}

// containsTime reports whether the requested time is among the available
// ones. Matching is exact string comparison on the canonical format.
func containsTime(times []string, requested string) bool {
	for _, t := range times {
		if t == requested {
			return true
		}
	}
	return false
}
