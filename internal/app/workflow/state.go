package workflow

import (
	"github.com/travelapp/flight-booking-client/internal/app/dto"
	"github.com/travelapp/flight-booking-client/internal/pkg/flight"
	"github.com/travelapp/flight-booking-client/internal/pkg/passenger"
)

// Stage is one of the three workflow states. Transitions are one-way and
// user-driven: Search -> Booking -> Confirmation, plus an explicit start
// over back to Search.
type Stage string

const (
	StageSearch       Stage = "search"
	StageBooking      Stage = "booking"
	StageConfirmation Stage = "confirmation"
)

// RequestStatus tracks one in-flight remote operation.
type RequestStatus string

const (
	StatusIdle    RequestStatus = "idle"
	StatusLoading RequestStatus = "loading"
	StatusSuccess RequestStatus = "success"
	StatusError   RequestStatus = "error"
)

// State is the controller's observable snapshot. It is process-local,
// never persisted, and fully reset whenever the user navigates to a
// different stage identifier.
type State struct {
	Stage Stage `json:"stage"`

	// search stage
	Criteria     *dto.SearchCriteria `json:"criteria,omitempty"`
	SortKey      dto.SortKey         `json:"sort_key"`
	Flights      []flight.Card       `json:"flights,omitempty"`
	SearchStatus RequestStatus       `json:"search_status"`

	// booking stage
	FlightID      string                `json:"flight_id,omitempty"`
	Flight        *flight.Card          `json:"flight,omitempty"`
	FlightStatus  RequestStatus         `json:"flight_status"`
	FieldErrors   passenger.FieldErrors `json:"field_errors,omitempty"`
	BookingStatus RequestStatus         `json:"booking_status"`

	// confirmation stage
	BookingReference   string        `json:"booking_reference,omitempty"`
	Booking            *dto.Booking  `json:"booking,omitempty"`
	ConfirmationStatus RequestStatus `json:"confirmation_status"`

	LastError string `json:"last_error,omitempty"`
}

func newSearchState() State {
	return State{
		Stage:              StageSearch,
		SortKey:            dto.SortByDepartureTime,
		SearchStatus:       StatusIdle,
		FlightStatus:       StatusIdle,
		BookingStatus:      StatusIdle,
		ConfirmationStatus: StatusIdle,
	}
}

// clone copies the snapshot so subscribers never observe in-place
// mutation. Flight and booking records are treated as read-only.
func (s State) clone() State {
	out := s

	if s.Criteria != nil {
		criteria := *s.Criteria
		out.Criteria = &criteria
	}

	if s.Flights != nil {
		out.Flights = make([]flight.Card, len(s.Flights))
		copy(out.Flights, s.Flights)
	}

	if s.Flight != nil {
		card := *s.Flight
		out.Flight = &card
	}

	if s.FieldErrors != nil {
		out.FieldErrors = make(passenger.FieldErrors, len(s.FieldErrors))
		for k, v := range s.FieldErrors {
			out.FieldErrors[k] = v
		}
	}

	if s.Booking != nil {
		booking := *s.Booking
		out.Booking = &booking
	}

	return out
}
