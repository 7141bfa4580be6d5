package ports

import (
	"cleaning-route-service/internal/domain"
	"context"
)

// Port: the fixed roster of drivers available for dispatch.
type DriverRoster interface {
	ListDrivers(ctx context.Context) ([]domain.DriverRecord, error)
}
