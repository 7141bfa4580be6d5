package domain

import "time"

// VisitResult is one solved visit inside a tour.
type VisitResult struct {
	VisitLabel  string
	ArrivalTime time.Time
}

// Tour is the optimizer's solution for one vehicle.
// A nil StartTime marks a vehicle the optimizer left unused.
type Tour struct {
	VehicleLabel string
	StartTime    *time.Time
	EndTime      *time.Time
	Visits       []VisitResult
}

// ItineraryEntry is the normalized schedule of a single driver.
type ItineraryEntry struct {
	DriverID  string
	StartTime time.Time
	EndTime   time.Time
	Visits    []VisitResult
}

// Itinerary is rebuilt on every request; visit order is the driving order.
type Itinerary []ItineraryEntry
