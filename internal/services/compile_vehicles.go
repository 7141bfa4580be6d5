package services

import (
	"cleaning-route-service/internal/domain"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CompileVehicles turns roster entries into vehicles that start and end at the
// shared depot.
//
// Shift clock values are read on the policy's planning date (UTC). The arrival
// window opens at the shift start and stays open for ArrivalBuffer; the
// departure window closes at the shift end and opens DepartureBuffer earlier.
// A shift whose end clock is not after its start clock runs past midnight and
// ends on the following day. Window bounds are computed on absolute instants,
// so the departure buffer never wraps inside a single calendar day. The
// arrival window is clamped to the shift end.
func CompileVehicles(
	drivers []domain.DriverRecord,
	depot domain.Coordinates,
	policy domain.Policy,
) ([]domain.Vehicle, error) {
	if policy.CostDivisor <= 0 {
		return nil, fmt.Errorf("compile vehicles: cost divisor must be positive, got %d", policy.CostDivisor)
	}

	vehicles := make([]domain.Vehicle, 0, len(drivers))
	seen := make(map[string]struct{}, len(drivers))

	for i, d := range drivers {
		v, err := compileVehicle(d, depot, policy)
		if err != nil {
			return nil, fmt.Errorf("compile vehicles: driver #%d (%q): %w", i+1, d.Name, err)
		}

		if _, dup := seen[v.Label]; dup {
			return nil, fmt.Errorf(
				"compile vehicles: driver #%d: %w: duplicate driver name %q",
				i+1, domain.ErrInvalidDriverRecord, v.Label,
			)
		}
		seen[v.Label] = struct{}{}

		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

func compileVehicle(d domain.DriverRecord, depot domain.Coordinates, policy domain.Policy) (domain.Vehicle, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidDriverRecord)
	}

	startClock, err := parseClock(d.StartHour, d.StartMinute)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("%w: shift start: %v", domain.ErrInvalidDriverRecord, err)
	}
	endClock, err := parseClock(d.EndHour, d.EndMinute)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("%w: shift end: %v", domain.ErrInvalidDriverRecord, err)
	}

	capacity, err := strconv.ParseInt(strings.TrimSpace(d.Capacity), 10, 64)
	if err != nil || capacity <= 0 {
		return domain.Vehicle{}, fmt.Errorf("%w: capacity %q must be a positive integer", domain.ErrInvalidDriverRecord, d.Capacity)
	}

	hourly, err := strconv.ParseFloat(strings.TrimSpace(d.HourlyCost), 64)
	if err != nil || !(hourly > 0) || math.IsInf(hourly, 1) {
		return domain.Vehicle{}, fmt.Errorf("%w: hourly cost %q must be a positive number", domain.ErrInvalidDriverRecord, d.HourlyCost)
	}

	day := time.Date(
		policy.PlanningDate.Year(), policy.PlanningDate.Month(), policy.PlanningDate.Day(),
		0, 0, 0, 0, time.UTC,
	)
	shiftStart := day.Add(startClock)
	shiftEnd := day.Add(endClock)
	if !shiftEnd.After(shiftStart) {
		shiftEnd = shiftEnd.Add(24 * time.Hour)
	}

	departOpens := shiftEnd.Add(-policy.DepartureBuffer)
	if departOpens.Before(shiftStart) {
		return domain.Vehicle{}, fmt.Errorf(
			"%w: shift %s-%s is shorter than the %s departure buffer",
			domain.ErrInvalidDriverRecord,
			shiftStart.Format("15:04"), shiftEnd.Format("15:04"), policy.DepartureBuffer,
		)
	}

	// a start window never reaches past the end of the shift
	arriveCloses := shiftStart.Add(policy.ArrivalBuffer)
	if arriveCloses.After(shiftEnd) {
		arriveCloses = shiftEnd
	}

	derived := derivedCost(hourly, policy)

	return domain.Vehicle{
		Label:       name,
		DisplayName: name,
		ShiftWindows: domain.ShiftWindows{
			Arrive: []domain.TimeWindow{domain.NewWindow(shiftStart, arriveCloses)},
			Depart: []domain.TimeWindow{domain.NewWindow(departOpens, shiftEnd)},
		},
		Depot:    depot,
		Capacity: capacity,
		Cost: domain.CostModel{
			PerHour:         hourly,
			PerKilometer:    derived,
			PerTraveledHour: derived,
		},
		Enabled: !d.Disabled,
	}, nil
}

// derivedCost is the per-kilometer and per-traveled-hour cost. Integer division
// truncates like the roster's integer costs; ExactCostDivision keeps fractions.
func derivedCost(hourly float64, policy domain.Policy) float64 {
	if policy.ExactCostDivision {
		return hourly / float64(policy.CostDivisor)
	}
	return float64(int64(hourly) / policy.CostDivisor)
}

// parseClock reads an hour/minute pair into an offset from midnight.
func parseClock(hour, minute string) (time.Duration, error) {
	h, err := strconv.Atoi(strings.TrimSpace(hour))
	if err != nil {
		return 0, fmt.Errorf("hour %q is not an integer", hour)
	}
	m, err := strconv.Atoi(strings.TrimSpace(minute))
	if err != nil {
		return 0, fmt.Errorf("minute %q is not an integer", minute)
	}

	if h < 0 || h > 23 {
		return 0, errors.New("hour must be within 0-23")
	}
	if m < 0 || m > 59 {
		return 0, errors.New("minute must be within 0-59")
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}
