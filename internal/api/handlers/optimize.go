package handlers

import (
	"cleaning-route-service/internal/api/dto"
	"cleaning-route-service/internal/domain"
	"cleaning-route-service/internal/platform/obs"
	"cleaning-route-service/internal/ports"
	"cleaning-route-service/internal/services"
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type OptimizeHandler struct {
	Locations ports.LocationSource
	Roster    ports.DriverRoster
	Optimizer ports.TourOptimizer

	Parent string
	Policy domain.Policy

	// Timeout is the wall-clock budget for one request, solver call included.
	Timeout time.Duration
}

// OptimizeRoutes builds the day's problem, solves it and returns one entry per
// driver the optimizer put to work.
func (h *OptimizeHandler) OptimizeRoutes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req := services.OptimizeRoutesRequest{
		Parent: h.Parent,
		Policy: h.Policy,
	}

	itinerary, err := services.OptimizeRoutes(ctx, req, h.Locations, h.Roster, h.Optimizer)
	if err != nil {
		status := statusFor(err)
		log.Error().
			Str("req_id", obs.RequestID(ctx)).
			Int("status", status).
			Err(err).
			Msg("optimize routes failed")
		writeError(w, r, status, errorMessage(err))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewItineraryResponse(itinerary))
}
