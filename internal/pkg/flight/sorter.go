package flight

import (
	"sort"

	"github.com/travelapp/flight-booking-client/internal/app/dto"
)

// SortFlights returns a new slice ordered ascending by the given key.
// The input slice is never mutated and ties keep their input order, so
// re-sorting an already fetched result set is free of network calls and
// deterministic. An unknown or empty key falls back to departure time.
func SortFlights(flights []dto.Flight, key dto.SortKey) []dto.Flight {
	sorted := make([]dto.Flight, len(flights))
	copy(sorted, flights)

	switch key {
	case dto.SortByPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case dto.SortByDuration:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DurationMinutes < sorted[j].DurationMinutes
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DepartureUnix() < sorted[j].DepartureUnix()
		})
	}

	return sorted
}
