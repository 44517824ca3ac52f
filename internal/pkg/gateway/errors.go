package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/travelapp/flight-booking-client/internal/pkg/exception"
)

// Every gateway failure normalizes to one of three classes: not found,
// transport failure, or server-side booking rejection.
var (
	// ErrUnavailable marks transport-class failures: network errors, bad
	// status codes, malformed or error-bearing GraphQL responses.
	ErrUnavailable = errors.New("flight service unavailable")

	// ErrBookingRejected marks a business rejection reported by the server
	// in the createBooking result.
	ErrBookingRejected = errors.New("booking rejected")

	ErrFlightNotFound = exception.ApplicationError{
		Message:    "flight not found",
		StatusCode: http.StatusNotFound,
	}

	ErrBookingNotFound = exception.ApplicationError{
		Message:    "booking not found",
		StatusCode: http.StatusNotFound,
	}

	ErrRateLimited = exception.ApplicationError{
		Message:    "too many requests to flight service",
		StatusCode: http.StatusTooManyRequests,
		Cause:      ErrUnavailable,
	}
)

func transportError(cause error) error {
	return exception.ApplicationError{
		Message:    "flight service unavailable",
		StatusCode: http.StatusBadGateway,
		Cause:      fmt.Errorf("%w: %w", ErrUnavailable, cause),
	}
}

// bookingRejected carries the server-supplied message verbatim so the form
// can display it as-is.
func bookingRejected(message string) error {
	if message == "" {
		message = "booking was rejected"
	}

	return exception.ApplicationError{
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      ErrBookingRejected,
	}
}
