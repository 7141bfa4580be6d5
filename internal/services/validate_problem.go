package services

import (
	"cleaning-route-service/internal/domain"
	"errors"
	"fmt"
)

// CheckHorizon verifies the problem against its planning horizon: every
// window is ordered, every stop has a window intersecting the horizon and
// the availability of some enabled vehicle, and every vehicle shift window
// lies inside the horizon. All violations are reported together, each
// wrapping domain.ErrHorizonViolation.
func CheckHorizon(problem *domain.RoutingProblem) error {
	if problem == nil {
		return errors.New("check horizon: problem is nil")
	}

	h := problem.Horizon
	var errs []error

	if !h.Ordered() {
		errs = append(errs, fmt.Errorf("%w: horizon %s starts after it ends", domain.ErrHorizonViolation, h))
	}

	availability := vehicleAvailability(problem.Vehicles)

	for _, s := range problem.Stops {
		inHorizon, served := false, len(availability) == 0
		for _, w := range s.AllowedWindows {
			if !w.Ordered() {
				errs = append(errs, fmt.Errorf("%w: stop %q window %s starts after it ends", domain.ErrHorizonViolation, s.Label, w))
				continue
			}
			if h.Intersects(w) {
				inHorizon = true
			}
			for _, a := range availability {
				if a.Intersects(w) {
					served = true
				}
			}
		}
		if !inHorizon {
			errs = append(errs, fmt.Errorf("%w: stop %q has no window inside horizon %s", domain.ErrHorizonViolation, s.Label, h))
		} else if !served {
			errs = append(errs, fmt.Errorf("%w: stop %q has no window while any enabled vehicle is on shift", domain.ErrHorizonViolation, s.Label))
		}
	}

	for _, v := range problem.Vehicles {
		windows := make([]domain.TimeWindow, 0, len(v.ShiftWindows.Arrive)+len(v.ShiftWindows.Depart))
		windows = append(windows, v.ShiftWindows.Arrive...)
		windows = append(windows, v.ShiftWindows.Depart...)

		for _, w := range windows {
			switch {
			case !w.Ordered():
				errs = append(errs, fmt.Errorf("%w: vehicle %q window %s starts after it ends", domain.ErrHorizonViolation, v.Label, w))
			case !h.Contains(w):
				errs = append(errs, fmt.Errorf("%w: vehicle %q window %s outside horizon %s", domain.ErrHorizonViolation, v.Label, w, h))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("check horizon: %w", errors.Join(errs...))
}

// vehicleAvailability spans each enabled vehicle from its earliest possible
// departure to its latest possible return.
func vehicleAvailability(vehicles []domain.Vehicle) []domain.TimeWindow {
	spans := make([]domain.TimeWindow, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.Enabled || len(v.ShiftWindows.Arrive) == 0 || len(v.ShiftWindows.Depart) == 0 {
			continue
		}

		start := v.ShiftWindows.Arrive[0].Start
		for _, w := range v.ShiftWindows.Arrive[1:] {
			if w.Start.Before(start) {
				start = w.Start
			}
		}
		end := v.ShiftWindows.Depart[0].End
		for _, w := range v.ShiftWindows.Depart[1:] {
			if w.End.After(end) {
				end = w.End
			}
		}
		spans = append(spans, domain.NewWindow(start, end))
	}
	return spans
}
