package booking

import (
	"strings"
	"time"
)

// StorageLayout is the layout used to persist and report timestamps.
// Values are always rendered in UTC.
const StorageLayout = "2006-01-02 15:04:05"

// acceptedLayouts must all carry an explicit UTC offset or zone letter.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
}

var naiveLayouts = []string{
	StorageLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseInstant parses a timestamp submitted by a client.  Inputs that do
// not state their offset are rejected instead of being read as UTC or as
// local time, since comparing them against "now" would silently shift
// the result by the server's zone.
func ParseInstant(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, Validationf("%s is required", field)
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naiveLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return time.Time{}, Validationf("%s must include a timezone offset, e.g. 2035-04-01T20:00:00Z", field)
		}
	}
	return time.Time{}, Validationf("%s is not a valid timestamp", field)
}

// FormatStorage renders t in StorageLayout (UTC).
func FormatStorage(t time.Time) string {
	return t.UTC().Format(StorageLayout)
}
