// Package ordernumber formats and validates the human-readable daily order
// identifier, DM-YYMMDD-NNNN: a fixed prefix, the calendar day, and a
// four-digit zero-padded sequence scoped to that day.
package ordernumber

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Prefix identifies orders from this shop.
const Prefix = "DM"

// MaxSequence is the largest sequence a single day can hold.
const MaxSequence = 9999

var pattern = regexp.MustCompile(`^DM-\d{6}-\d{4}$`)

// Format builds the order number for the given day and sequence.
func Format(day time.Time, seq int) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", fmt.Errorf("order sequence %d out of range [1, %d]", seq, MaxSequence)
	}
	return fmt.Sprintf("%s-%s-%04d", Prefix, day.Format("060102"), seq), nil
}

// DayPrefix returns the date-scoped prefix shared by all order numbers of the
// given day, e.g. "DM-250829".
func DayPrefix(day time.Time) string {
	return fmt.Sprintf("%s-%s", Prefix, day.Format("060102"))
}

// DayKey returns the counter key for the given day, e.g. "250829".
func DayKey(day time.Time) string {
	return day.Format("060102")
}

// IsValid reports whether s matches the order number format.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}

// Sequence extracts the trailing sequence from a valid order number.
func Sequence(s string) (int, error) {
	if !IsValid(s) {
		return 0, fmt.Errorf("malformed order number %q", s)
	}
	return strconv.Atoi(s[len(s)-4:])
}
