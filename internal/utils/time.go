package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/noor/internal/constants"
)

// LoadLocation resolves an IANA name; "" and "Local" mean the system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateString formats t as YYYY-MM-DD in t's own location.
func DateString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD day key at midnight UTC. Day keys are compared as strings
// everywhere else, so only the canonical zero-padded form is accepted.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}
