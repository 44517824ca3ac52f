package flight

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration converts minutes to a display string.
// Example: 125 -> "2h 5m"
func FormatDuration(durationInMinutes int) string {
	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatPrice renders a dollar amount with thousands separators.
// Example: 1299.5 -> "$1,299.50"
func FormatPrice(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(str, ".")

	var result []byte
	count := 0
	for i := len(whole) - 1; i >= 0; i-- {
		result = append([]byte{whole[i]}, result...)
		count++
		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	if negative {
		return "$-" + string(result) + "." + frac
	}

	return "$" + string(result) + "." + frac
}

// FormatStops renders the stop count.
// Example: 0 -> "Nonstop", 2 -> "2 stops"
func FormatStops(stops int) string {
	switch {
	case stops <= 0:
		return "Nonstop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
