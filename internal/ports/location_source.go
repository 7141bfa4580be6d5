package ports

import (
	"cleaning-route-service/internal/domain"
	"context"
	"time"
)

// Port: a boundary for retrieving the cleaning jobs of one planning day.
type LocationSource interface {
	// Return the location records for the given day in a stable order.
	ListLocations(ctx context.Context, planningDate time.Time) ([]domain.LocationRecord, error)
}
