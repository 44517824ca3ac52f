package dto

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/travelapp/flight-booking-client/internal/pkg/exception"
)

// Flight is the immutable flight record returned by the remote API. Field
// names mirror the GraphQL schema so the struct decodes the data payload
// directly.
type Flight struct {
	ID              string  `json:"id"`
	FlightNumber    string  `json:"flightNumber"`
	Airline         string  `json:"airline"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureTime   string  `json:"departureTime"`
	ArrivalTime     string  `json:"arrivalTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Stops           int     `json:"stops"`
	AircraftType    string  `json:"aircraftType"`
	AvailableSeats  int     `json:"availableSeats"`
}

// DepartureUnix parses the departure timestamp for ordering. Unparseable
// timestamps sort first.
func (f Flight) DepartureUnix() int64 {
	t, err := time.Parse(time.RFC3339, f.DepartureTime)
	if err != nil {
		return 0
	}

	return t.Unix()
}

// SearchCriteria is the user-entered search input. Origin and destination
// are 3-letter IATA codes, normalized to uppercase before submission.
type SearchCriteria struct {
	Origin        string `json:"origin" validate:"required,len=3,alpha"`
	Destination   string `json:"destination" validate:"required,len=3,alpha"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
	Passengers    int    `json:"passengers" validate:"omitempty,min=1,max=9"`
}

func (c *SearchCriteria) Bind(r *http.Request) error {
	c.Normalize()

	if err := c.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

// Normalize uppercases the airport codes and defaults the passenger count.
func (c *SearchCriteria) Normalize() {
	c.Origin = strings.ToUpper(strings.TrimSpace(c.Origin))
	c.Destination = strings.ToUpper(strings.TrimSpace(c.Destination))

	if c.Passengers == 0 {
		c.Passengers = 1
	}
}

func (c *SearchCriteria) Validate() error {
	if err := ValidateSingleError(c); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	// ISO dates compare lexicographically
	if c.DepartureDate < time.Now().Format("2006-01-02") {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "departure_date must not be in the past",
		}
	}

	return nil
}

// SortKey selects the ordering of a flight result set.
type SortKey string

const (
	SortByDepartureTime SortKey = "departure_time"
	SortByPrice         SortKey = "price"
	SortByDuration      SortKey = "duration"
)

var AllowedSortKey = map[SortKey]bool{
	SortByDepartureTime: true,
	SortByPrice:         true,
	SortByDuration:      true,
}

// SortRequest changes the ordering of already-fetched results.
type SortRequest struct {
	SortBy SortKey `json:"sort_by"`
}

func (s *SortRequest) Bind(r *http.Request) error {
	if !AllowedSortKey[s.SortBy] {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("Invalid sort key %s", s.SortBy),
		}
	}

	return nil
}
