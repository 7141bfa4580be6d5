package services

import (
	"cleaning-route-service/internal/domain"
	"cleaning-route-service/internal/platform/metrics"
	"cleaning-route-service/internal/platform/obs"
	"cleaning-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type OptimizeRoutesRequest struct {
	// Parent is the optimizer resource the problem is solved under.
	Parent string
	Policy domain.Policy
}

// OptimizeRoutes builds the planning day's routing problem, solves it with the
// external optimizer and returns the normalized itinerary.
//
// Every compile-time failure is returned before the optimizer is called so a
// bad roster or an empty day never spends solver quota.
func OptimizeRoutes(
	ctx context.Context,
	req OptimizeRoutesRequest,
	locations ports.LocationSource,
	roster ports.DriverRoster,
	optimizer ports.TourOptimizer,
) (_ domain.Itinerary, err error) {
	defer obs.Time(ctx, "services.OptimizeRoutes")(&err)

	if strings.TrimSpace(req.Parent) == "" {
		return nil, errors.New("optimize routes: parent must be non-empty")
	}

	policy := req.Policy

	// Locations and roster come from independent stores; load them together.
	var (
		rows    []domain.LocationRecord
		drivers []domain.DriverRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		rows, e = locations.ListLocations(gctx, policy.PlanningDate)
		if e != nil {
			return fmt.Errorf("optimize routes: list locations: %w", e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		drivers, e = roster.ListDrivers(gctx)
		if e != nil {
			return fmt.Errorf("optimize routes: list drivers: %w", e)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stops, skipped := CompileVisits(rows, policy.DefaultServiceDuration, policy)
	if skipped > 0 {
		metrics.SkippedLocations.Add(float64(skipped))
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Int("skipped", skipped).
			Int("rows", len(rows)).
			Str("planning_date", policy.PlanningDate.Format("2006-01-02")).
			Msg("location rows without coordinates skipped")
	}

	vehicles, err := CompileVehicles(drivers, policy.Depot, policy)
	if err != nil {
		return nil, fmt.Errorf("optimize routes: %w", err)
	}

	problem, err := Assemble(stops, vehicles, policy.Horizon)
	if err != nil {
		return nil, fmt.Errorf("optimize routes: %w", err)
	}
	metrics.ProblemSize.WithLabelValues("stops").Set(float64(len(problem.Stops)))
	metrics.ProblemSize.WithLabelValues("vehicles").Set(float64(len(problem.Vehicles)))

	if err := CheckHorizon(problem); err != nil {
		if policy.StrictHorizon {
			return nil, fmt.Errorf("optimize routes: %w", err)
		}
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Err(err).
			Msg("problem violates planning horizon; submitting anyway")
	}

	tours, err := optimizer.OptimizeTours(ctx, req.Parent, problem)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstreamFailure) && !errors.Is(err, domain.ErrMalformedSolverOutput) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
		}
		return nil, fmt.Errorf("optimize routes: solve: %w", err)
	}

	itinerary, err := Normalize(problem, tours)
	if err != nil {
		return nil, fmt.Errorf("optimize routes: %w", err)
	}

	log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Int("stops", len(problem.Stops)).
		Int("vehicles", len(problem.Vehicles)).
		Int("drivers_used", len(itinerary)).
		Msg("routes optimized")

	return itinerary, nil
}
