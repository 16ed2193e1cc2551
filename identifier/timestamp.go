package identifier

import (
	"regexp"
	"time"
)

// TimestampLayout is the canonical wire form for record timestamps:
// millisecond precision, UTC, Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// secondsLayout accepts the same form without the fractional part.
const secondsLayout = "2006-01-02T15:04:05Z07:00"

// timestampPattern matches date, T, time, optional .mmm, and either Z or a
// numeric UTC offset. Calendar validity is checked separately by parsing.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?(Z|[+-]\d{2}:\d{2})$`)

// Timestamp renders t in the canonical wire form.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current time in the canonical wire form.
func Now() string {
	return Timestamp(time.Now())
}

// IsValidTimestamp reports whether s is an ISO 8601 timestamp acceptable on a
// record: canonical millisecond form, the same without milliseconds, or with
// a numeric UTC offset instead of Z. It never returns an error.
func IsValidTimestamp(s string) bool {
	if !timestampPattern.MatchString(s) {
		return false
	}
	if _, err := time.Parse(TimestampLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(secondsLayout, s)
	return err == nil
}
