package api

import (
	"cleaning-route-service/internal/api/handlers"
	"cleaning-route-service/internal/domain"
	"cleaning-route-service/internal/platform/metrics"
	"cleaning-route-service/internal/ports"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	Locations ports.LocationSource
	Roster    ports.DriverRoster
	Optimizer ports.TourOptimizer

	Parent        string
	Policy        domain.Policy
	SolverTimeout time.Duration
}

// NewRouter wires the operator API. It exposes a single route; metrics and
// health live on the admin router.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(recoverer)
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	optimize := &handlers.OptimizeHandler{
		Locations: deps.Locations,
		Roster:    deps.Roster,
		Optimizer: deps.Optimizer,
		Parent:    deps.Parent,
		Policy:    deps.Policy,
		Timeout:   deps.SolverTimeout,
	}
	r.Get("/optimize_routes", optimize.OptimizeRoutes)

	return r
}

// NewAdminRouter serves /metrics and /healthz for the internal listener.
func NewAdminRouter(db handlers.Pinger) http.Handler {
	r := chi.NewRouter()
	r.Use(recoverer)
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	health := &handlers.HealthHandler{DB: db}
	r.Get("/healthz", health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
