package appointment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"nailart/models"
)

// Field bounds, in characters.
const (
	MaxNameLength    = 50
	MaxServiceLength = 50
	MaxDateLength    = 20
	MaxTimeLength    = 20
	MaxEmailLength   = 120
	MaxAddons        = 10
	MaxAddonLength   = 40
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateAppointment checks an untyped booking payload and returns the trimmed values.
// Checks run in field order and stop at the first failure, which is always reported as
// ErrInvalidPayload.
func ValidateAppointment(payload map[string]interface{}) (models.AppointmentInput, error) {
	var in models.AppointmentInput
	var ok bool

	if in.FirstName, ok = requiredString(payload["first_name"], MaxNameLength); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	if in.LastName, ok = requiredString(payload["last_name"], MaxNameLength); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	if in.Email, ok = validEmail(payload["email"]); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	if in.ServiceType, ok = requiredString(payload["service_type"], MaxServiceLength); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	if in.AppointmentDate, ok = requiredString(payload["appointment_date"], MaxDateLength); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	if in.AppointmentTime, ok = requiredString(payload["appointment_time"], MaxTimeLength); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	rawAddons, present := payload["addons"]
	if in.Addons, ok = validAddons(rawAddons, present); !ok {
		return models.AppointmentInput{}, ErrInvalidPayload
	}
	return in, nil
}

// requiredString accepts a string that is non-empty and at most max characters once trimmed.
func requiredString(v interface{}, max int) (string, bool) {
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n == 0 || n > max {
		return "", false
	}
	return s, true
}

// validEmail trims, bounds and pattern-checks an address, returning it lower-cased.
func validEmail(v interface{}) (string, bool) {
	email, ok := requiredString(v, MaxEmailLength)
	if !ok || !emailPattern.MatchString(email) {
		return "", false
	}
	return strings.ToLower(email), true
}

// validAddons accepts an absent field or an array of at most MaxAddons short strings.
// An explicit null is not an array and is rejected.
func validAddons(v interface{}, present bool) ([]string, bool) {
	if !present {
		return []string{}, true
	}
	items, isArray := v.([]interface{})
	if !isArray || len(items) > MaxAddons {
		return nil, false
	}
	addons := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := requiredString(item, MaxAddonLength)
		if !ok {
			return nil, false
		}
		addons = append(addons, s)
	}
	return addons, true
}
