package entity

import (
	"strings"
	"time"
)

// Canonical wire formats for the external scheduling service.
const (
	DateFormat = "01/02/2006" // MM/DD/YYYY
	TimeFormat = "03:04 PM"   // HH:MM AM/PM
)

// RequestType represents the kind of appointment being requested
type RequestType string

const (
	RequestTypeConsultation RequestType = "consultation"
	RequestTypeFollowUp     RequestType = "follow_up"
	RequestTypeNewPatient   RequestType = "new_patient"
)

// BookingRequest holds the booking details extracted by the upstream intent
// classifier. Fields may be partially filled; completeness gates which
// negotiation branch executes.
type BookingRequest struct {
	PatientName   string      `json:"patient_name,omitempty"`
	DoctorID      string      `json:"doctor_id"`
	DoctorName    string      `json:"doctor_name,omitempty"`
	PreferredDate string      `json:"preferred_date"`
	PreferredTime string      `json:"preferred_time"`
	RequestType   RequestType `json:"request_type,omitempty"`
}

// MissingFields returns the names of required booking fields that are empty,
// in a stable order.
func (r *BookingRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.DoctorID) == "" {
		missing = append(missing, "doctor_id")
	}
	if strings.TrimSpace(r.PreferredDate) == "" {
		missing = append(missing, "preferred_date")
	}
	if strings.TrimSpace(r.PreferredTime) == "" {
		missing = append(missing, "preferred_time")
	}
	return missing
}

// IsComplete reports whether all required booking fields are present.
func (r *BookingRequest) IsComplete() bool {
	return len(r.MissingFields()) == 0
}

// ValidateFormats checks that the date and time parse under the canonical
// formats. Must pass before the request is sent downstream.
func (r *BookingRequest) ValidateFormats() error {
	if _, err := time.Parse(DateFormat, r.PreferredDate); err != nil {
		return err
	}
	if _, err := time.Parse(TimeFormat, r.PreferredTime); err != nil {
		return err
	}
	return nil
}

// DisplayDoctor returns the human-facing doctor name, falling back to the
// doctor ID when no name was extracted.
func (r *BookingRequest) DisplayDoctor() string {
	if r.DoctorName != "" {
		return r.DoctorName
	}
	return r.DoctorID
}
