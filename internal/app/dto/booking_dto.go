package dto

import (
	"net/http"

	"github.com/travelapp/flight-booking-client/internal/pkg/exception"
)

// PassengerDraft is the raw passenger form input before validation.
type PassengerDraft struct {
	Name  string `json:"passenger_name"`
	Email string `json:"passenger_email"`
	Phone string `json:"passenger_phone"`
}

func (p *PassengerDraft) Bind(_ *http.Request) error {
	// field validation is the workflow's job so errors come back per field,
	// not as a single 400
	return nil
}

// FieldEditRequest reports that the user changed one passenger form
// field, so its validation error can be cleared.
type FieldEditRequest struct {
	Field string `json:"field" validate:"required"`
}

func (f *FieldEditRequest) Bind(_ *http.Request) error {
	if err := ValidateSingleError(f); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// PassengerDetails is the validated, normalized form of a PassengerDraft:
// trimmed name and digit-stripped phone.
type PassengerDetails struct {
	Name  string `json:"passenger_name"`
	Email string `json:"passenger_email"`
	Phone string `json:"passenger_phone"`
}

// BookingRequest is the createBooking mutation payload.
type BookingRequest struct {
	FlightID  string
	Passenger PassengerDetails
}

type BookingStatus string

const BookingStatusConfirmed BookingStatus = "CONFIRMED"

// Confirmed reports whether the booking is in the confirmed state. Every
// other status is presented as not confirmed.
func (s BookingStatus) Confirmed() bool {
	return s == BookingStatusConfirmed
}

// Booking is the immutable record returned by the remote API after a
// successful booking. BookingReference is the opaque confirmation lookup
// key, distinct from ID.
type Booking struct {
	ID               string        `json:"id"`
	BookingReference string        `json:"bookingReference"`
	PassengerName    string        `json:"passengerName"`
	PassengerEmail   string        `json:"passengerEmail"`
	PassengerPhone   string        `json:"passengerPhone"`
	BookingDate      string        `json:"bookingDate"`
	Status           BookingStatus `json:"status"`
	Flight           *Flight       `json:"flight"`
}
