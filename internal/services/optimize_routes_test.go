package services

import (
	"cleaning-route-service/internal/adapters/optimizer"
	"cleaning-route-service/internal/domain"
	"context"
	"errors"
	"testing"
	"time"
)

type fakeLocations struct {
	rows []domain.LocationRecord
	err  error
}

func (f fakeLocations) ListLocations(ctx context.Context, planningDate time.Time) ([]domain.LocationRecord, error) {
	return f.rows, f.err
}

type fakeRoster struct {
	drivers []domain.DriverRecord
	err     error
}

func (f fakeRoster) ListDrivers(ctx context.Context) ([]domain.DriverRecord, error) {
	return f.drivers, f.err
}

func scenarioPolicy() domain.Policy {
	policy := domain.DefaultPolicy()
	policy.Horizon = domain.NewWindow(
		time.Date(2024, 2, 12, 20, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 13, 20, 0, 0, 0, time.UTC),
	)
	return policy
}

func scenarioRequest() OptimizeRoutesRequest {
	return OptimizeRoutesRequest{Parent: "projects/cleaning-test", Policy: scenarioPolicy()}
}

func TestOptimizeRoutesEndToEnd(t *testing.T) {
	locations := fakeLocations{rows: []domain.LocationRecord{
		{ID: "1", Name: "A", Latitude: coord(35.0), Longitude: coord(139.0)},
		{ID: "2", Name: "B", Latitude: coord(35.1), Longitude: coord(139.1)},
	}}
	roster := fakeRoster{drivers: []domain.DriverRecord{
		driver("Driver1", "8", "0", "17", "0", "1000", "1000"),
	}}
	stub := &optimizer.StubOptimizer{Tours: []domain.Tour{{
		VehicleLabel: "Driver1",
		StartTime:    ptr(at(8, 5)),
		EndTime:      ptr(at(16, 50)),
		Visits: []domain.VisitResult{
			{VisitLabel: "A", ArrivalTime: at(8, 30)},
			{VisitLabel: "B", ArrivalTime: at(9, 10)},
		},
	}}}

	itinerary, err := OptimizeRoutes(context.Background(), scenarioRequest(), locations, roster, stub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(itinerary) != 1 {
		t.Fatalf("expected 1 itinerary entry, got %d", len(itinerary))
	}
	entry := itinerary[0]
	if entry.DriverID != "Driver1" {
		t.Fatalf("driver = %q, want Driver1", entry.DriverID)
	}
	if !entry.StartTime.Equal(at(8, 5)) || !entry.EndTime.Equal(at(16, 50)) {
		t.Fatalf("tour = %v-%v, want 08:05-16:50", entry.StartTime, entry.EndTime)
	}
	if len(entry.Visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(entry.Visits))
	}
	if entry.Visits[0].VisitLabel != "A" || !entry.Visits[0].ArrivalTime.Equal(at(8, 30)) {
		t.Fatalf("first visit = %+v, want A@08:30", entry.Visits[0])
	}
	if entry.Visits[1].VisitLabel != "B" || !entry.Visits[1].ArrivalTime.Equal(at(9, 10)) {
		t.Fatalf("second visit = %+v, want B@09:10", entry.Visits[1])
	}

	problem := stub.LastProblem()
	if problem == nil || len(problem.Stops) != 2 || len(problem.Vehicles) != 1 {
		t.Fatalf("solver received unexpected problem: %+v", problem)
	}
	if c := problem.Vehicles[0].Cost; c.PerKilometer != 333 {
		t.Fatalf("per-km cost = %v, want 333", c.PerKilometer)
	}
}

func TestOptimizeRoutesEmptyDaySkipsSolver(t *testing.T) {
	stub := &optimizer.StubOptimizer{}
	roster := fakeRoster{drivers: []domain.DriverRecord{driver("Driver1", "8", "0", "17", "0", "10", "1000")}}

	_, err := OptimizeRoutes(context.Background(), scenarioRequest(), fakeLocations{}, roster, stub)
	if !errors.Is(err, domain.ErrEmptyProblem) {
		t.Fatalf("expected ErrEmptyProblem, got %v", err)
	}
	if stub.Calls() != 0 {
		t.Fatalf("solver called %d times, want 0", stub.Calls())
	}
}

func TestOptimizeRoutesInvalidDriverSkipsSolver(t *testing.T) {
	stub := &optimizer.StubOptimizer{}
	locations := fakeLocations{rows: []domain.LocationRecord{{ID: "1", Name: "A", Latitude: coord(35), Longitude: coord(139)}}}
	roster := fakeRoster{drivers: []domain.DriverRecord{driver("Driver1", "x", "0", "17", "0", "10", "1000")}}

	_, err := OptimizeRoutes(context.Background(), scenarioRequest(), locations, roster, stub)
	if !errors.Is(err, domain.ErrInvalidDriverRecord) {
		t.Fatalf("expected ErrInvalidDriverRecord, got %v", err)
	}
	if stub.Calls() != 0 {
		t.Fatalf("solver called %d times, want 0", stub.Calls())
	}
}

func TestOptimizeRoutesHorizonPolicy(t *testing.T) {
	locations := fakeLocations{rows: []domain.LocationRecord{{ID: "1", Name: "A", Latitude: coord(35), Longitude: coord(139)}}}
	roster := fakeRoster{drivers: []domain.DriverRecord{driver("Driver1", "8", "0", "17", "0", "10", "1000")}}

	// default horizon ends at 15:00, before the driver's departure window
	req := OptimizeRoutesRequest{Parent: "projects/cleaning-test", Policy: domain.DefaultPolicy()}
	req.Policy.StrictHorizon = true

	stub := &optimizer.StubOptimizer{}
	_, err := OptimizeRoutes(context.Background(), req, locations, roster, stub)
	if !errors.Is(err, domain.ErrHorizonViolation) {
		t.Fatalf("strict: expected ErrHorizonViolation, got %v", err)
	}
	if stub.Calls() != 0 {
		t.Fatalf("strict: solver called %d times, want 0", stub.Calls())
	}

	req.Policy.StrictHorizon = false
	itinerary, err := OptimizeRoutes(context.Background(), req, locations, roster, stub)
	if err != nil {
		t.Fatalf("lenient: unexpected error: %v", err)
	}
	if stub.Calls() != 1 || len(itinerary) != 1 {
		t.Fatalf("lenient: calls=%d entries=%d, want 1 and 1", stub.Calls(), len(itinerary))
	}
}

func TestOptimizeRoutesWrapsSolverFailure(t *testing.T) {
	locations := fakeLocations{rows: []domain.LocationRecord{{ID: "1", Name: "A", Latitude: coord(35), Longitude: coord(139)}}}
	roster := fakeRoster{drivers: []domain.DriverRecord{driver("Driver1", "8", "0", "17", "0", "10", "1000")}}
	stub := &optimizer.StubOptimizer{Err: errors.New("connection reset")}

	_, err := OptimizeRoutes(context.Background(), scenarioRequest(), locations, roster, stub)
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
}

func TestOptimizeRoutesSourceFailure(t *testing.T) {
	sourceErr := errors.New("db down")
	roster := fakeRoster{drivers: []domain.DriverRecord{driver("Driver1", "8", "0", "17", "0", "10", "1000")}}

	_, err := OptimizeRoutes(context.Background(), scenarioRequest(), fakeLocations{err: sourceErr}, roster, &optimizer.StubOptimizer{})
	if !errors.Is(err, sourceErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestOptimizeRoutesRequiresParent(t *testing.T) {
	req := scenarioRequest()
	req.Parent = " "
	if _, err := OptimizeRoutes(context.Background(), req, fakeLocations{}, fakeRoster{}, &optimizer.StubOptimizer{}); err == nil {
		t.Fatalf("expected error for empty parent")
	}
}

func TestOptimizeRoutesDefaultPolicyLogsHorizonViolations(t *testing.T) {
	locations := fakeLocations{rows: []domain.LocationRecord{{ID: "1", Name: "A", Latitude: coord(35), Longitude: coord(139)}}}
	roster := fakeRoster{drivers: []domain.DriverRecord{driver("Driver1", "8", "0", "17", "0", "10", "1000")}}
	stub := &optimizer.StubOptimizer{}

	req := OptimizeRoutesRequest{Parent: "projects/cleaning-test", Policy: domain.DefaultPolicy()}
	itinerary, err := OptimizeRoutes(context.Background(), req, locations, roster, stub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.Calls() != 1 || len(itinerary) != 1 {
		t.Fatalf("calls=%d entries=%d, want 1 and 1", stub.Calls(), len(itinerary))
	}
}
