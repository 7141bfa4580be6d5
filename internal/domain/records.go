package domain

// LocationRecord is one cleaning job as returned by the upstream store for a
// planning day. Coordinates are optional: the upstream join can leave them
// empty when a listing has no geocoded address.
type LocationRecord struct {
	ID           string
	Name         string
	BuildingName string
	PrefectureID string
	Status       string
	Latitude     *float64
	Longitude    *float64
	AttendedOnly bool
	HasCheckIn   bool
}

// DriverRecord is one roster entry. Shift clock values, capacity and cost are
// kept as the raw strings the roster provides; the vehicle compiler parses them.
type DriverRecord struct {
	Name        string
	StartHour   string
	StartMinute string
	EndHour     string
	EndMinute   string
	Capacity    string
	HourlyCost  string
	Disabled    bool
}
