package domain

import "time"

type StopFlags struct {
	RequiresAttendedDelivery bool
}

// Stop is a single location requiring one timed visit.
// Stops are built once by the visit compiler and never mutated afterwards.
type Stop struct {
	Label           string
	Location        Coordinates
	ServiceDuration time.Duration
	LoadDemand      int64
	AllowedWindows  []TimeWindow
	Flags           StopFlags
}
