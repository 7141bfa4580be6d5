package domain

type ShiftWindows struct {
	Arrive []TimeWindow
	Depart []TimeWindow
}

type CostModel struct {
	PerHour         float64
	PerKilometer    float64
	PerTraveledHour float64
}

// Vehicle is one driver with a shift, a depot and a load limit.
// The depot is both the start and the end location of the route.
type Vehicle struct {
	Label        string
	DisplayName  string
	ShiftWindows ShiftWindows
	Depot        Coordinates
	Capacity     int64
	Cost         CostModel
	Enabled      bool
}
