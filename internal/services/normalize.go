package services

import (
	"cleaning-route-service/internal/domain"
	"errors"
	"fmt"
)

// Normalize flattens solved tours into a per-driver itinerary.
//
// Tours without a start time belong to vehicles the optimizer left unused and
// are dropped whatever their visit list holds. Every other tour must carry an
// end time, timed visits, and only labels of stops compiled into problem.
// Tour order and visit order are kept as returned by the optimizer.
func Normalize(problem *domain.RoutingProblem, tours []domain.Tour) (domain.Itinerary, error) {
	if problem == nil {
		return nil, errors.New("normalize: problem is nil")
	}

	labels := problem.StopLabels()
	out := make(domain.Itinerary, 0, len(tours))

	for i, tour := range tours {
		if tour.StartTime == nil {
			continue
		}

		if tour.EndTime == nil {
			return nil, fmt.Errorf(
				"normalize: tour #%d (%q): %w: start time without end time",
				i+1, tour.VehicleLabel, domain.ErrMalformedSolverOutput,
			)
		}

		visits := make([]domain.VisitResult, 0, len(tour.Visits))
		for j, v := range tour.Visits {
			if _, ok := labels[v.VisitLabel]; !ok {
				return nil, fmt.Errorf(
					"normalize: tour #%d (%q) visit #%d: %w: unknown visit label %q",
					i+1, tour.VehicleLabel, j+1, domain.ErrMalformedSolverOutput, v.VisitLabel,
				)
			}
			if v.ArrivalTime.IsZero() {
				return nil, fmt.Errorf(
					"normalize: tour #%d (%q) visit %q: %w: missing arrival time",
					i+1, tour.VehicleLabel, v.VisitLabel, domain.ErrMalformedSolverOutput,
				)
			}
			visits = append(visits, domain.VisitResult{
				VisitLabel:  v.VisitLabel,
				ArrivalTime: v.ArrivalTime.UTC(),
			})
		}

		out = append(out, domain.ItineraryEntry{
			DriverID:  tour.VehicleLabel,
			StartTime: tour.StartTime.UTC(),
			EndTime:   tour.EndTime.UTC(),
			Visits:    visits,
		})
	}

	return out, nil
}
