package workflow

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/travelapp/flight-booking-client/internal/app/dto"
	"github.com/travelapp/flight-booking-client/internal/pkg/exception"
	"github.com/travelapp/flight-booking-client/internal/pkg/flight"
	"github.com/travelapp/flight-booking-client/internal/pkg/passenger"
)

// FlightAPI is the gateway surface the controller consumes.
type FlightAPI interface {
	SearchFlights(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error)
	GetFlight(ctx context.Context, id string) (dto.Flight, error)
	CreateBooking(ctx context.Context, req dto.BookingRequest) (dto.Booking, error)
	GetBooking(ctx context.Context, reference string) (dto.Booking, error)
}

var ErrNoActiveBooking = exception.ApplicationError{
	Message:    "no active booking stage",
	StatusCode: http.StatusConflict,
}

// Controller owns one booking workflow: the three-stage state machine, its
// transient per-stage state and the sequencing of gateway calls. State is
// mutated only through the defined transitions; subscribers receive a
// snapshot after each one.
//
// Every remote operation is tagged with a generation counter per kind. A
// response applies only while its generation is still current and the
// stage identifier is unchanged, so a superseded or late response can
// never clobber newer state. Navigating between stages also cancels the
// previous stage's context, dropping interest in its in-flight work.
type Controller struct {
	api FlightAPI

	mu          sync.Mutex
	state       State
	results     []dto.Flight // raw search results backing the ordered view
	subscribers []func(State)

	searchGen  uint64
	flightGen  uint64
	bookingGen uint64
	confirmGen uint64

	stageCtx    context.Context
	stageCancel context.CancelFunc
}

func NewController(api FlightAPI) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		api:         api,
		state:       newSearchState(),
		stageCtx:    ctx,
		stageCancel: cancel,
	}
}

// Subscribe registers a listener notified with a snapshot after every
// state transition.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscribers = append(c.subscribers, fn)
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.clone()
}

// SubmitSearch validates and normalizes the criteria, then issues the
// search. Malformed criteria are rejected before any network call. A
// newer search supersedes a pending one for display purposes.
func (c *Controller) SubmitSearch(criteria dto.SearchCriteria) (State, error) {
	criteria.Normalize()

	if err := criteria.Validate(); err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	if c.state.Stage != StageSearch {
		c.resetToSearchLocked()
	}

	c.searchGen++
	gen := c.searchGen
	ctx := c.stageCtx

	crit := criteria
	c.state.Criteria = &crit
	c.state.SearchStatus = StatusLoading
	c.state.LastError = ""
	c.state.Flights = nil
	c.results = nil

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	results, err := c.api.SearchFlights(ctx, criteria)

	c.mu.Lock()
	if gen != c.searchGen || c.state.Stage != StageSearch {
		// superseded by a newer search or the user navigated away
		current := c.state.clone()
		c.mu.Unlock()

		return current, nil
	}

	if err != nil {
		c.state.SearchStatus = StatusError
		c.state.LastError = errorMessage(err)
	} else {
		c.results = results
		c.state.Flights = flight.Cards(flight.SortFlights(results, c.state.SortKey))
		c.state.SearchStatus = StatusSuccess
	}

	snapshot, subs = c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return snapshot, err
}

// SetSortKey re-orders already fetched results without a network call.
func (c *Controller) SetSortKey(key dto.SortKey) (State, error) {
	if !dto.AllowedSortKey[key] {
		return c.State(), exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid sort key " + string(key),
		}
	}

	c.mu.Lock()
	c.state.SortKey = key

	if c.results != nil {
		c.state.Flights = flight.Cards(flight.SortFlights(c.results, key))
	}

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return snapshot, nil
}

// OpenBooking enters the booking stage for one flight id, discarding all
// prior stage state, and fetches the flight fresh. On failure the stage is
// kept with the error on display; there is no automatic retry.
func (c *Controller) OpenBooking(flightID string) (State, error) {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return c.State(), exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "flight id is required",
		}
	}

	c.mu.Lock()
	ctx := c.newStageLocked()

	c.state = newSearchState()
	c.state.Stage = StageBooking
	c.state.FlightID = flightID
	c.state.FlightStatus = StatusLoading

	c.flightGen++
	gen := c.flightGen

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	record, err := c.api.GetFlight(ctx, flightID)

	c.mu.Lock()
	if gen != c.flightGen || c.state.Stage != StageBooking || c.state.FlightID != flightID {
		current := c.state.clone()
		c.mu.Unlock()

		return current, nil
	}

	if err != nil {
		c.state.FlightStatus = StatusError
		c.state.LastError = errorMessage(err)
	} else {
		card := flight.NewCard(record)
		c.state.Flight = &card
		c.state.FlightStatus = StatusSuccess
	}

	snapshot, subs = c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return snapshot, err
}

// SubmitPassenger runs the validation engine over the form draft. On
// validation failure the stage is kept with field-level errors and no
// network call is made. On success the booking mutation is issued; a
// rejection keeps the form editable for resubmission, success moves to
// the confirmation stage carrying only the booking reference.
func (c *Controller) SubmitPassenger(draft dto.PassengerDraft) (State, error) {
	c.mu.Lock()
	if c.state.Stage != StageBooking {
		current := c.state.clone()
		c.mu.Unlock()

		return current, ErrNoActiveBooking
	}

	details, fieldErrs := passenger.Validate(draft)
	if fieldErrs != nil {
		c.state.FieldErrors = fieldErrs
		c.state.BookingStatus = StatusError
		c.state.LastError = ""

		snapshot, subs := c.snapshotLocked()
		c.mu.Unlock()
		emit(snapshot, subs)

		return snapshot, nil
	}

	flightID := c.state.FlightID
	ctx := c.stageCtx

	c.state.FieldErrors = nil
	c.state.BookingStatus = StatusLoading
	c.state.LastError = ""

	c.bookingGen++
	gen := c.bookingGen

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	booking, err := c.api.CreateBooking(ctx, dto.BookingRequest{
		FlightID:  flightID,
		Passenger: details,
	})

	c.mu.Lock()
	if gen != c.bookingGen || c.state.Stage != StageBooking || c.state.FlightID != flightID {
		current := c.state.clone()
		c.mu.Unlock()

		return current, nil
	}

	if err != nil {
		c.state.BookingStatus = StatusError
		c.state.LastError = errorMessage(err)

		snapshot, subs = c.snapshotLocked()
		c.mu.Unlock()
		emit(snapshot, subs)

		return snapshot, err
	}

	ctx, gen = c.enterConfirmationLocked(booking.BookingReference)

	snapshot, subs = c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return c.fetchBooking(ctx, gen, booking.BookingReference)
}

// FieldEdited clears the validation error for one form field, leaving the
// others in place.
func (c *Controller) FieldEdited(field string) (State, error) {
	c.mu.Lock()
	c.state.FieldErrors.Clear(field)
	if len(c.state.FieldErrors) == 0 {
		c.state.FieldErrors = nil
	}

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return snapshot, nil
}

// OpenConfirmation enters the confirmation stage for a booking reference
// and fetches the booking. A failed lookup is recoverable only through an
// explicit StartOver, never an automatic retry.
func (c *Controller) OpenConfirmation(reference string) (State, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return c.State(), exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "booking reference is required",
		}
	}

	c.mu.Lock()
	ctx, gen := c.enterConfirmationLocked(reference)

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return c.fetchBooking(ctx, gen, reference)
}

// StartOver returns to a fresh search stage, discarding all prior state.
func (c *Controller) StartOver() State {
	c.mu.Lock()
	c.resetToSearchLocked()

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return snapshot
}

func (c *Controller) fetchBooking(ctx context.Context, gen uint64, reference string) (State, error) {
	booking, err := c.api.GetBooking(ctx, reference)

	c.mu.Lock()
	if gen != c.confirmGen || c.state.Stage != StageConfirmation || c.state.BookingReference != reference {
		current := c.state.clone()
		c.mu.Unlock()

		return current, nil
	}

	if err != nil {
		c.state.ConfirmationStatus = StatusError
		c.state.LastError = errorMessage(err)
	} else {
		record := booking
		c.state.Booking = &record
		c.state.ConfirmationStatus = StatusSuccess
	}

	snapshot, subs := c.snapshotLocked()
	c.mu.Unlock()
	emit(snapshot, subs)

	return snapshot, err
}

// enterConfirmationLocked switches to the confirmation stage carrying only
// the reference. Caller must hold the lock.
func (c *Controller) enterConfirmationLocked(reference string) (context.Context, uint64) {
	ctx := c.newStageLocked()

	c.state = newSearchState()
	c.state.Stage = StageConfirmation
	c.state.BookingReference = reference
	c.state.ConfirmationStatus = StatusLoading

	c.confirmGen++

	return ctx, c.confirmGen
}

func (c *Controller) resetToSearchLocked() {
	c.newStageLocked()
	c.state = newSearchState()
	c.results = nil
}

// newStageLocked cancels the previous stage's context so late responses
// for it are dropped, and opens a new one. Caller must hold the lock.
func (c *Controller) newStageLocked() context.Context {
	c.stageCancel()

	ctx, cancel := context.WithCancel(context.Background())
	c.stageCtx = ctx
	c.stageCancel = cancel
	c.results = nil

	return ctx
}

func (c *Controller) snapshotLocked() (State, []func(State)) {
	subs := make([]func(State), len(c.subscribers))
	copy(subs, c.subscribers)

	return c.state.clone(), subs
}

func emit(snapshot State, subs []func(State)) {
	for _, fn := range subs {
		fn(snapshot)
	}
}

// errorMessage keeps the user-facing message only; for a booking rejection
// that is the server text verbatim.
func errorMessage(err error) string {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return err.Error()
}
