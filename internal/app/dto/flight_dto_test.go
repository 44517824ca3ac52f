//go:build unit

package dto

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestSearchCriteria_Validate(t *testing.T) {
	// Initialize validator for tests
	_ = InitValidator()

	validateRequest := func(req SearchCriteria, wantErr bool, wantMsg string) func(t *testing.T) {
		return func(t *testing.T) {
			req.Normalize()

			err := req.Validate()
			if (err != nil) != wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, wantErr)
			}

			if wantErr && wantMsg != "" {
				if diff := cmp.Diff(wantMsg, err.Error()); diff != "" {
					t.Fatalf("Validate() error message mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}

	validCriteria := SearchCriteria{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: futureDate(),
		Passengers:    1,
	}

	t.Run("valid_criteria", validateRequest(validCriteria, false, ""))

	t.Run("missing_origin", validateRequest(SearchCriteria{
		Destination:   "JFK",
		DepartureDate: futureDate(),
		Passengers:    1,
	}, true, "origin is a required field"))

	t.Run("missing_destination", validateRequest(SearchCriteria{
		Origin:        "SFO",
		DepartureDate: futureDate(),
		Passengers:    1,
	}, true, "destination is a required field"))

	t.Run("missing_departure_date", validateRequest(SearchCriteria{
		Origin:      "SFO",
		Destination: "JFK",
		Passengers:  1,
	}, true, "departure_date is a required field"))

	t.Run("origin_not_iata", validateRequest(SearchCriteria{
		Origin:        "SANFRANCISCO",
		Destination:   "JFK",
		DepartureDate: futureDate(),
		Passengers:    1,
	}, true, ""))

	t.Run("malformed_date", validateRequest(SearchCriteria{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: "09/10/2026",
		Passengers:    1,
	}, true, ""))

	t.Run("past_date", validateRequest(SearchCriteria{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: "2020-01-01",
		Passengers:    1,
	}, true, "departure_date must not be in the past"))

	t.Run("today_is_allowed", validateRequest(SearchCriteria{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: time.Now().Format("2006-01-02"),
		Passengers:    1,
	}, false, ""))

	t.Run("too_many_passengers", validateRequest(SearchCriteria{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: futureDate(),
		Passengers:    10,
	}, true, ""))
}

func TestSearchCriteria_Normalize(t *testing.T) {
	criteria := SearchCriteria{
		Origin:        " sfo ",
		Destination:   "jfk",
		DepartureDate: futureDate(),
	}

	criteria.Normalize()

	if criteria.Origin != "SFO" || criteria.Destination != "JFK" {
		t.Fatalf("expected uppercase airport codes, got %q -> %q", criteria.Origin, criteria.Destination)
	}

	if criteria.Passengers != 1 {
		t.Fatalf("expected passengers to default to 1, got %d", criteria.Passengers)
	}
}

func TestSortRequest_Bind(t *testing.T) {
	bindRequest := func(req SortRequest, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			err := req.Bind(nil)
			if (err != nil) != wantErr {
				t.Fatalf("Bind() error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	t.Run("price", bindRequest(SortRequest{SortBy: SortByPrice}, false))
	t.Run("duration", bindRequest(SortRequest{SortBy: SortByDuration}, false))
	t.Run("departure_time", bindRequest(SortRequest{SortBy: SortByDepartureTime}, false))
	t.Run("unknown_key", bindRequest(SortRequest{SortBy: "stops"}, true))
	t.Run("empty_key", bindRequest(SortRequest{}, true))
}

func TestBookingStatus_Confirmed(t *testing.T) {
	if !BookingStatusConfirmed.Confirmed() {
		t.Fatal("expected CONFIRMED to be confirmed")
	}

	if BookingStatus("CANCELLED").Confirmed() {
		t.Fatal("expected CANCELLED to not be confirmed")
	}
}
