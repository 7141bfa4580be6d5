package ports

import (
	"cleaning-route-service/internal/domain"
	"context"
)

// Contract for the external tour optimization engine.
type TourOptimizer interface {
	// Solve the problem under the given parent resource (e.g. "projects/<id>").
	// Transport and engine-side failures wrap domain.ErrUpstreamFailure.
	OptimizeTours(ctx context.Context, parent string, problem *domain.RoutingProblem) ([]domain.Tour, error)
}
