package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/travelapp/flight-booking-client/internal/app/dto"
)

// MockFlightAPI is a testify mock of the FlightAPI interface.
type MockFlightAPI struct {
	mock.Mock
}

func NewMockFlightAPI(t *testing.T) *MockFlightAPI {
	m := &MockFlightAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFlightAPI) SearchFlights(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error) {
	args := m.Called(ctx, criteria)

	var flights []dto.Flight
	if v := args.Get(0); v != nil {
		flights = v.([]dto.Flight)
	}

	return flights, args.Error(1)
}

func (m *MockFlightAPI) GetFlight(ctx context.Context, id string) (dto.Flight, error) {
	args := m.Called(ctx, id)

	var record dto.Flight
	if v := args.Get(0); v != nil {
		record = v.(dto.Flight)
	}

	return record, args.Error(1)
}

func (m *MockFlightAPI) CreateBooking(ctx context.Context, req dto.BookingRequest) (dto.Booking, error) {
	args := m.Called(ctx, req)

	var booking dto.Booking
	if v := args.Get(0); v != nil {
		booking = v.(dto.Booking)
	}

	return booking, args.Error(1)
}

func (m *MockFlightAPI) GetBooking(ctx context.Context, reference string) (dto.Booking, error) {
	args := m.Called(ctx, reference)

	var booking dto.Booking
	if v := args.Get(0); v != nil {
		booking = v.(dto.Booking)
	}

	return booking, args.Error(1)
}
