package passenger

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/travelapp/flight-booking-client/internal/app/dto"
)

// Field names match the JSON form field names so the presentation layer can
// attach each message to its input.
const (
	FieldName  = "passenger_name"
	FieldEmail = "passenger_email"
	FieldPhone = "passenger_phone"
)

const (
	maxNameLength  = 100
	minPhoneDigits = 10
	maxPhoneDigits = 20
)

var nonDigit = regexp.MustCompile(`\D`)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// Clear drops the error for one field. The workflow calls this when the
// user edits that field, leaving the other errors in place.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

// Validate checks a passenger form draft and returns either the normalized
// details (trimmed name, digit-stripped phone) or a non-empty error map.
// There is no partial success. Pure and deterministic, safe to re-run on
// every keystroke.
func Validate(draft dto.PassengerDraft) (dto.PassengerDetails, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(draft.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > maxNameLength {
		errs[FieldName] = "Name must be between 2 and 100 characters"
	}

	if !validEmail(draft.Email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}

	phone := nonDigit.ReplaceAllString(draft.Phone, "")
	if len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		errs[FieldPhone] = "Phone number must be 10-20 digits"
	}

	if len(errs) > 0 {
		return dto.PassengerDetails{}, errs
	}

	return dto.PassengerDetails{
		Name:  name,
		Email: draft.Email,
		Phone: phone,
	}, nil
}

// validEmail accepts the permissive local@domain shape: a non-empty local
// part without "@" or whitespace, then "@", then a non-empty remainder.
func validEmail(email string) bool {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" {
		return false
	}

	return !strings.ContainsFunc(local, unicode.IsSpace)
}
