package utils

import (
	"strings"
	"time"
)

// Formats accepted for applicant-supplied dates. The form sends ISO dates,
// the US format shows up when people type the field by hand.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseDate tries each supported layout in order. The bool reports success;
// an empty or unparseable input never panics.
func ParseDate(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, input); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// CalculateAge returns the whole-years age for a date-of-birth string at the
// given reference time, subtracting a year when the birthday has not yet
// occurred that year. The bool is false when the date cannot be parsed.
func CalculateAge(dateOfBirth string, now time.Time) (int, bool) {
	birthDate, ok := ParseDate(dateOfBirth)
	if !ok {
		return 0, false
	}

	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}

	return age, true
}

// IsAtLeast18 treats an unparseable date as not 18 or older.
func IsAtLeast18(dateOfBirth string, now time.Time) bool {
	age, ok := CalculateAge(dateOfBirth, now)
	return ok && age >= 18
}
