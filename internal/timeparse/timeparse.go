// Package timeparse parses the strict ISO-8601 subset accepted across
// shinrai annotations: dates, date-times with optional fractional
// seconds, and an optional Z or ±hh:mm zone offset.
package timeparse

import (
	"errors"
	"fmt"
	"time"
)

// ErrParse reports an unparseable timestamp.
var ErrParse = errors.New("timeparse: cannot parse timestamp")

// layouts are tried in order. Go accepts fractional seconds after the
// seconds field even when the layout omits them, so three layouts cover
// every accepted variant. Zoned layouts come first so an explicit
// offset is never silently ignored.
var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse parses an ISO-8601 date or date-time string. Zone-less inputs
// are interpreted as UTC so comparisons across annotations are stable.
func Parse(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrParse)
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, ts, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrParse, ts)
}
