package optimizer

import (
	"cleaning-route-service/internal/domain"
	"context"
	"errors"
	"sync"
	"time"
)

// StubOptimizer answers without calling a solver. With Tours or Err set it
// returns them verbatim; otherwise it deals stops round-robin to the enabled
// vehicles and schedules them back to back from each shift start.
type StubOptimizer struct {
	Tours []domain.Tour
	Err   error

	// TravelTime is the fixed leg time used by the generated plan.
	TravelTime time.Duration

	mu       sync.Mutex
	calls    int
	problems []*domain.RoutingProblem
}

func (s *StubOptimizer) OptimizeTours(
	ctx context.Context,
	parent string,
	problem *domain.RoutingProblem,
) ([]domain.Tour, error) {
	s.mu.Lock()
	s.calls++
	s.problems = append(s.problems, problem)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Tours != nil {
		return s.Tours, nil
	}
	if problem == nil {
		return nil, errors.New("stub optimizer: problem must be non-nil")
	}
	return s.plan(problem), nil
}

// Calls reports how many times OptimizeTours was invoked.
func (s *StubOptimizer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastProblem returns the most recent problem received, or nil.
func (s *StubOptimizer) LastProblem() *domain.RoutingProblem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.problems) == 0 {
		return nil
	}
	return s.problems[len(s.problems)-1]
}

func (s *StubOptimizer) plan(problem *domain.RoutingProblem) []domain.Tour {
	leg := s.TravelTime
	if leg <= 0 {
		leg = 15 * time.Minute
	}

	var active []int
	for i, v := range problem.Vehicles {
		if v.Enabled && len(v.ShiftWindows.Arrive) > 0 {
			active = append(active, i)
		}
	}

	assigned := make(map[int][]domain.Stop, len(active))
	if len(active) > 0 {
		for i, st := range problem.Stops {
			vi := active[i%len(active)]
			assigned[vi] = append(assigned[vi], st)
		}
	}

	tours := make([]domain.Tour, 0, len(problem.Vehicles))
	for i, v := range problem.Vehicles {
		stops := assigned[i]
		if len(stops) == 0 {
			tours = append(tours, domain.Tour{VehicleLabel: v.Label})
			continue
		}

		start := v.ShiftWindows.Arrive[0].Start
		clock := start
		visits := make([]domain.VisitResult, 0, len(stops))
		for _, st := range stops {
			clock = clock.Add(leg)
			if len(st.AllowedWindows) > 0 && clock.Before(st.AllowedWindows[0].Start) {
				clock = st.AllowedWindows[0].Start
			}
			visits = append(visits, domain.VisitResult{VisitLabel: st.Label, ArrivalTime: clock})
			clock = clock.Add(st.ServiceDuration)
		}
		end := clock.Add(leg)

		tours = append(tours, domain.Tour{
			VehicleLabel: v.Label,
			StartTime:    &start,
			EndTime:      &end,
			Visits:       visits,
		})
	}
	return tours
}
