package media

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timestamp is an offset into a media stream with millisecond precision.
// It is written as HH:MM:SS, with an optional .mmm fraction.
type Timestamp struct {
	offset time.Duration
}

var timestampRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)

// ParseTimestamp parses HH:MM:SS or HH:MM:SS.mmm
func ParseTimestamp(s string) (Timestamp, error) {
	m := timestampRegex.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp format %q: expected HH:MM:SS[.mmm]", s)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	if minutes > 59 {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: minutes must be 0-59", s)
	}
	if seconds > 59 {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: seconds must be 0-59", s)
	}

	// ".5" is half a second, not five milliseconds
	millis := 0
	if m[4] != "" {
		millis, _ = strconv.Atoi(m[4] + strings.Repeat("0", 3-len(m[4])))
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return Timestamp{offset: d}, nil
}

// TimestampFromDuration truncates d to milliseconds. Negative durations clamp to zero.
func TimestampFromDuration(d time.Duration) Timestamp {
	if d < 0 {
		d = 0
	}
	return Timestamp{offset: d.Truncate(time.Millisecond)}
}

// String renders HH:MM:SS, adding .mmm only when the offset has a fraction
func (t Timestamp) String() string {
	total := t.offset / time.Millisecond
	h := total / 3_600_000
	m := total / 60_000 % 60
	s := total / 1000 % 60
	ms := total % 1000
	if ms == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// Duration returns the offset from the start of the stream
func (t Timestamp) Duration() time.Duration {
	return t.offset
}

// Before reports whether t is earlier than other
func (t Timestamp) Before(other Timestamp) bool {
	return t.offset < other.offset
}
