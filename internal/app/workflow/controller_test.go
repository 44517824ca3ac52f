//go:build unit

package workflow

import (
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/travelapp/flight-booking-client/internal/app/dto"
	"github.com/travelapp/flight-booking-client/internal/pkg/exception"
	"github.com/travelapp/flight-booking-client/internal/pkg/gateway"
	"github.com/travelapp/flight-booking-client/internal/pkg/passenger"
)

func TestMain(m *testing.M) {
	if err := dto.InitValidator(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func searchCriteria() dto.SearchCriteria {
	criteria := dto.SearchCriteria{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: futureDate(),
		Passengers:    1,
	}
	criteria.Normalize()

	return criteria
}

func searchResults() []dto.Flight {
	return []dto.Flight{
		{ID: "42", FlightNumber: "UA100", DepartureTime: "2026-09-10T06:30:00Z", Price: 450, DurationMinutes: 330, Stops: 0},
		{ID: "7", FlightNumber: "DL200", DepartureTime: "2026-09-10T12:15:00Z", Price: 299.99, DurationMinutes: 345, Stops: 1},
	}
}

func validDraft() dto.PassengerDraft {
	return dto.PassengerDraft{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "(555) 123-4567",
	}
}

func flightIDs(state State) []string {
	ids := make([]string, len(state.Flights))
	for i, card := range state.Flights {
		ids[i] = card.ID
	}

	return ids
}

func TestController_SearchAndSort(t *testing.T) {
	api := NewMockFlightAPI(t)
	api.On("SearchFlights", mock.Anything, searchCriteria()).
		Return(searchResults(), nil).Once()

	c := NewController(api)

	state, err := c.SubmitSearch(searchCriteria())
	require.NoError(t, err)
	assert.Equal(t, StageSearch, state.Stage)
	assert.Equal(t, StatusSuccess, state.SearchStatus)
	assert.Equal(t, dto.SortByDepartureTime, state.SortKey)

	// default ordering is departure time ascending
	if diff := cmp.Diff([]string{"42", "7"}, flightIDs(state)); diff != "" {
		t.Fatalf("search order mismatch (-want +got):\n%s", diff)
	}

	// re-sorting is purely local, no second SearchFlights call
	state, err = c.SetSortKey(dto.SortByPrice)
	require.NoError(t, err)
	assert.Equal(t, dto.SortByPrice, state.SortKey)

	if diff := cmp.Diff([]string{"7", "42"}, flightIDs(state)); diff != "" {
		t.Fatalf("price order mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SubmitSearch_InvalidCriteria(t *testing.T) {
	api := NewMockFlightAPI(t)
	c := NewController(api)

	_, err := c.SubmitSearch(dto.SearchCriteria{Origin: "SFO"})
	require.Error(t, err)

	state := c.State()
	assert.Equal(t, StatusIdle, state.SearchStatus)
	assert.Nil(t, state.Criteria)
}

func TestController_SubmitSearch_SupersededResponseIsDropped(t *testing.T) {
	slowCriteria := searchCriteria()

	fastCriteria := searchCriteria()
	fastCriteria.Destination = "LAX"

	entered := make(chan struct{})
	release := make(chan struct{})

	api := NewMockFlightAPI(t)
	api.On("SearchFlights", mock.Anything, slowCriteria).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(searchResults(), nil).Once()
	api.On("SearchFlights", mock.Anything, fastCriteria).
		Return([]dto.Flight{{ID: "99", DepartureTime: "2026-09-10T09:00:00Z"}}, nil).Once()

	c := NewController(api)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.SubmitSearch(slowCriteria)
	}()

	<-entered

	state, err := c.SubmitSearch(fastCriteria)
	require.NoError(t, err)

	close(release)
	<-done

	// the older response must not clobber the newer one
	final := c.State()
	if diff := cmp.Diff(flightIDs(state), flightIDs(final)); diff != "" {
		t.Fatalf("stale search overwrote newer results (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"99"}, flightIDs(final))
	assert.Equal(t, "LAX", final.Criteria.Destination)
}

func TestController_LateResponseAfterStartOverIsDropped(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	api := NewMockFlightAPI(t)
	api.On("GetFlight", mock.Anything, "42").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(searchResults()[0], nil).Once()

	c := NewController(api)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.OpenBooking("42")
	}()

	<-entered

	fresh := c.StartOver()
	require.Equal(t, StageSearch, fresh.Stage)

	close(release)
	<-done

	// the abandoned booking stage's response must not touch the new stage
	final := c.State()
	assert.Equal(t, StageSearch, final.Stage)
	assert.Equal(t, StatusIdle, final.FlightStatus)
	assert.Nil(t, final.Flight)
	assert.Empty(t, final.FlightID)
	assert.Empty(t, final.LastError)
}

func TestController_SearchFailure(t *testing.T) {
	api := NewMockFlightAPI(t)
	api.On("SearchFlights", mock.Anything, searchCriteria()).
		Return(nil, errors.New("connection refused")).Once()

	c := NewController(api)

	state, err := c.SubmitSearch(searchCriteria())
	require.Error(t, err)
	assert.Equal(t, StatusError, state.SearchStatus)
	assert.Equal(t, "connection refused", state.LastError)
	assert.Equal(t, StageSearch, state.Stage)
}

func TestController_OpenBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		api.On("GetFlight", mock.Anything, "42").
			Return(searchResults()[0], nil).Once()

		c := NewController(api)

		state, err := c.OpenBooking("42")
		require.NoError(t, err)
		assert.Equal(t, StageBooking, state.Stage)
		assert.Equal(t, StatusSuccess, state.FlightStatus)
		require.NotNil(t, state.Flight)
		assert.Equal(t, "42", state.Flight.ID)
		assert.Equal(t, "5h 30m", state.Flight.DurationLabel)
	})

	t.Run("not_found_keeps_stage", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		api.On("GetFlight", mock.Anything, "999").
			Return(nil, gateway.ErrFlightNotFound).Once()

		c := NewController(api)

		state, err := c.OpenBooking("999")
		require.Error(t, err)
		assert.Equal(t, StageBooking, state.Stage)
		assert.Equal(t, StatusError, state.FlightStatus)
		assert.Equal(t, "flight not found", state.LastError)
		assert.Nil(t, state.Flight)
	})

	t.Run("blank_id_rejected", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		c := NewController(api)

		_, err := c.OpenBooking("  ")
		require.Error(t, err)
		assert.Equal(t, StageSearch, c.State().Stage)
	})
}

func TestController_SubmitPassenger(t *testing.T) {
	openBooking := func(t *testing.T, api *MockFlightAPI) *Controller {
		t.Helper()

		api.On("GetFlight", mock.Anything, "42").
			Return(searchResults()[0], nil).Once()

		c := NewController(api)
		_, err := c.OpenBooking("42")
		require.NoError(t, err)

		return c
	}

	t.Run("happy_path_reaches_confirmation", func(t *testing.T) {
		booking := dto.Booking{
			ID:               "b-1",
			BookingReference: "ABC123",
			PassengerName:    "Jane Doe",
			Status:           dto.BookingStatusConfirmed,
		}

		api := NewMockFlightAPI(t)
		c := openBooking(t, api)

		api.On("CreateBooking", mock.Anything, dto.BookingRequest{
			FlightID: "42",
			Passenger: dto.PassengerDetails{
				Name:  "Jane Doe",
				Email: "jane@example.com",
				Phone: "5551234567",
			},
		}).Return(booking, nil).Once()
		api.On("GetBooking", mock.Anything, "ABC123").
			Return(booking, nil).Once()

		state, err := c.SubmitPassenger(validDraft())
		require.NoError(t, err)
		assert.Equal(t, StageConfirmation, state.Stage)
		assert.Equal(t, "ABC123", state.BookingReference)
		assert.Equal(t, StatusSuccess, state.ConfirmationStatus)
		require.NotNil(t, state.Booking)
		assert.True(t, state.Booking.Status.Confirmed())

		// booking stage state is gone once confirmation is entered
		assert.Empty(t, state.FlightID)
		assert.Nil(t, state.Flight)
	})

	t.Run("validation_failure_makes_no_network_call", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		c := openBooking(t, api)

		state, err := c.SubmitPassenger(dto.PassengerDraft{
			Name:  "A",
			Email: "bad",
			Phone: "123",
		})
		require.NoError(t, err)
		assert.Equal(t, StageBooking, state.Stage)
		assert.Equal(t, StatusError, state.BookingStatus)
		assert.Len(t, state.FieldErrors, 3)
		assert.Contains(t, state.FieldErrors, passenger.FieldName)
	})

	t.Run("rejection_keeps_form_editable", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		c := openBooking(t, api)

		rejection := exception.ApplicationError{
			Message:    "No seats available on this flight",
			StatusCode: http.StatusUnprocessableEntity,
			Cause:      gateway.ErrBookingRejected,
		}
		api.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, rejection).Once()

		state, err := c.SubmitPassenger(validDraft())
		require.Error(t, err)
		assert.True(t, errors.Is(err, gateway.ErrBookingRejected))
		assert.Equal(t, StageBooking, state.Stage)
		assert.Equal(t, StatusError, state.BookingStatus)
		assert.Equal(t, "No seats available on this flight", state.LastError)
		assert.Nil(t, state.FieldErrors)
	})

	t.Run("rejected_outside_booking_stage", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		c := NewController(api)

		_, err := c.SubmitPassenger(validDraft())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoActiveBooking))
	})
}

func TestController_FieldEdited(t *testing.T) {
	api := NewMockFlightAPI(t)
	api.On("GetFlight", mock.Anything, "42").
		Return(searchResults()[0], nil).Once()

	c := NewController(api)
	_, err := c.OpenBooking("42")
	require.NoError(t, err)

	state, err := c.SubmitPassenger(dto.PassengerDraft{Name: "A", Email: "bad", Phone: "123"})
	require.NoError(t, err)
	require.Len(t, state.FieldErrors, 3)

	state, err = c.FieldEdited(passenger.FieldEmail)
	require.NoError(t, err)
	assert.Len(t, state.FieldErrors, 2)
	assert.NotContains(t, state.FieldErrors, passenger.FieldEmail)
	assert.Contains(t, state.FieldErrors, passenger.FieldName)
}

func TestController_OpenConfirmation(t *testing.T) {
	t.Run("not_found_then_start_over", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		api.On("GetBooking", mock.Anything, "ZZZZZZ").
			Return(nil, gateway.ErrBookingNotFound).Once()

		c := NewController(api)

		state, err := c.OpenConfirmation("ZZZZZZ")
		require.Error(t, err)
		assert.True(t, errors.Is(err, gateway.ErrBookingNotFound))
		assert.Equal(t, StageConfirmation, state.Stage)
		assert.Equal(t, StatusError, state.ConfirmationStatus)
		assert.Equal(t, "booking not found", state.LastError)

		fresh := c.StartOver()
		assert.Equal(t, StageSearch, fresh.Stage)
		assert.Empty(t, fresh.BookingReference)
		assert.Empty(t, fresh.LastError)
		assert.Equal(t, StatusIdle, fresh.ConfirmationStatus)
	})

	t.Run("blank_reference_rejected", func(t *testing.T) {
		api := NewMockFlightAPI(t)
		c := NewController(api)

		_, err := c.OpenConfirmation("")
		require.Error(t, err)
		assert.Equal(t, StageSearch, c.State().Stage)
	})
}

func TestController_SubscribersSeeEveryTransition(t *testing.T) {
	api := NewMockFlightAPI(t)
	api.On("SearchFlights", mock.Anything, searchCriteria()).
		Return(searchResults(), nil).Once()

	c := NewController(api)

	var stages []RequestStatus
	c.Subscribe(func(s State) {
		stages = append(stages, s.SearchStatus)
	})

	_, err := c.SubmitSearch(searchCriteria())
	require.NoError(t, err)

	// one loading snapshot, one terminal snapshot
	if diff := cmp.Diff([]RequestStatus{StatusLoading, StatusSuccess}, stages); diff != "" {
		t.Fatalf("subscriber snapshots mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SnapshotsAreIsolated(t *testing.T) {
	api := NewMockFlightAPI(t)
	api.On("SearchFlights", mock.Anything, searchCriteria()).
		Return(searchResults(), nil).Once()

	c := NewController(api)

	state, err := c.SubmitSearch(searchCriteria())
	require.NoError(t, err)

	state.Flights[0].ID = "mutated"
	state.Criteria.Origin = "XXX"

	current := c.State()
	assert.Equal(t, "42", current.Flights[0].ID)
	assert.Equal(t, "SFO", current.Criteria.Origin)
}
