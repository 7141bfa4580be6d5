package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeWindow is a closed interval of instants, always held in UTC.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from two instants, normalizing both to UTC.
func NewWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start.UTC(), End: end.UTC()}
}

// BuildWindow parses two ISO-8601 instants with an explicit offset.
// Ordering is not checked here; see Ordered.
func BuildWindow(start, end string) (TimeWindow, error) {
	s, err := ParseInstant(start)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("build window: start: %w", err)
	}

	e, err := ParseInstant(end)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("build window: end: %w", err)
	}

	return TimeWindow{Start: s, End: e}, nil
}

// ParseInstant parses an RFC 3339 timestamp and returns the same instant in UTC.
func ParseInstant(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}

	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, v, err)
	}

	return t.UTC(), nil
}

func (w TimeWindow) Ordered() bool { return !w.Start.After(w.End) }

// Contains reports whether o lies entirely inside w (bounds inclusive).
func (w TimeWindow) Contains(o TimeWindow) bool {
	return !o.Start.Before(w.Start) && !o.End.After(w.End)
}

// Intersects reports whether w and o share at least one instant.
func (w TimeWindow) Intersects(o TimeWindow) bool {
	return !w.Start.After(o.End) && !o.Start.After(w.End)
}

func (w TimeWindow) String() string {
	return w.Start.Format(time.RFC3339) + "/" + w.End.Format(time.RFC3339)
}
