package domain

import "time"

// Policy holds the planning-day constants used when compiling a problem.
type Policy struct {
	PlanningDate           time.Time
	Depot                  Coordinates
	DefaultServiceDuration time.Duration
	ArrivalBuffer          time.Duration
	DepartureBuffer        time.Duration
	LoadUnitPerStop        int64
	LoadType               string
	VisitWindow            TimeWindow
	Horizon                TimeWindow
	CostDivisor            int64
	ExactCostDivision      bool
	TravelMode             string
	StrictHorizon          bool
}

// DefaultPolicy returns the single-depot, single-day policy the service
// runs with when nothing is overridden. Its horizon closes before the
// default shifts do, so horizon violations are only logged unless
// StrictHorizon is turned on.
func DefaultPolicy() Policy {
	return Policy{
		PlanningDate:           time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC),
		Depot:                  Coordinates{Lat: 35.836189, Lng: 139.814385},
		DefaultServiceDuration: 6 * time.Minute,
		ArrivalBuffer:          90 * time.Minute,
		DepartureBuffer:        60 * time.Minute,
		LoadUnitPerStop:        1,
		LoadType:               "pallets",
		VisitWindow: NewWindow(
			time.Date(2024, 2, 12, 22, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 13, 12, 0, 0, 0, time.UTC),
		),
		Horizon: NewWindow(
			time.Date(2024, 2, 12, 20, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 13, 15, 0, 0, 0, time.UTC),
		),
		CostDivisor:   3,
		TravelMode:    "DRIVING",
		StrictHorizon: false,
	}
}
