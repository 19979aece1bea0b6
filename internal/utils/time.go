package utils

import (
	"fmt"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDay parses a date string (YYYY-MM-DD) into midnight UTC of that calendar day.
func ParseDay(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// FormatDay formats the calendar day of t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
