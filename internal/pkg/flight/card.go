package flight

import "github.com/travelapp/flight-booking-client/internal/app/dto"

// Card is a display-ready flight: the raw record plus pre-formatted labels
// so the presentation layer only has to render.
type Card struct {
	dto.Flight
	DurationLabel string `json:"duration_label"`
	PriceLabel    string `json:"price_label"`
	StopsLabel    string `json:"stops_label"`
}

func NewCard(f dto.Flight) Card {
	return Card{
		Flight:        f,
		DurationLabel: FormatDuration(f.DurationMinutes),
		PriceLabel:    FormatPrice(f.Price),
		StopsLabel:    FormatStops(f.Stops),
	}
}

func Cards(flights []dto.Flight) []Card {
	cards := make([]Card, len(flights))
	for i, f := range flights {
		cards[i] = NewCard(f)
	}

	return cards
}
