package services

import (
	"cleaning-route-service/internal/domain"
	"fmt"
)

// Assemble combines compiled stops and vehicles into one routing problem.
// A problem without stops or without vehicles is rejected before any solver
// call is made.
func Assemble(
	stops []domain.Stop,
	vehicles []domain.Vehicle,
	horizon domain.TimeWindow,
) (*domain.RoutingProblem, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("assemble problem: %w: no stops", domain.ErrEmptyProblem)
	}
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("assemble problem: %w: no vehicles", domain.ErrEmptyProblem)
	}

	return &domain.RoutingProblem{
		Stops:    append([]domain.Stop(nil), stops...),
		Vehicles: append([]domain.Vehicle(nil), vehicles...),
		Horizon:  horizon,
	}, nil
}
