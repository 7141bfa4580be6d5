package services

import (
	"cleaning-route-service/internal/domain"
	"errors"
	"testing"
)

func TestAssembleRejectsEmptyInputs(t *testing.T) {
	policy := domain.DefaultPolicy()
	stop := domain.Stop{Label: "A"}
	vehicle := domain.Vehicle{Label: "Driver1"}

	if _, err := Assemble(nil, []domain.Vehicle{vehicle}, policy.Horizon); !errors.Is(err, domain.ErrEmptyProblem) {
		t.Fatalf("no stops: expected ErrEmptyProblem, got %v", err)
	}
	if _, err := Assemble([]domain.Stop{stop}, nil, policy.Horizon); !errors.Is(err, domain.ErrEmptyProblem) {
		t.Fatalf("no vehicles: expected ErrEmptyProblem, got %v", err)
	}
}

func TestAssembleCopiesInputs(t *testing.T) {
	policy := domain.DefaultPolicy()
	stops := []domain.Stop{{Label: "A"}, {Label: "B"}}
	vehicles := []domain.Vehicle{{Label: "Driver1"}}

	problem, err := Assemble(stops, vehicles, policy.Horizon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stops[0].Label = "changed"
	if problem.Stops[0].Label != "A" {
		t.Fatalf("problem shares the caller's stop slice")
	}
	if len(problem.Vehicles) != 1 || problem.Horizon != policy.Horizon {
		t.Fatalf("unexpected problem: %+v", problem)
	}
}
