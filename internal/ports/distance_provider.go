package ports

import (
	"context"

	"delivery-fee-service/internal/domain"
)

// Driving distance between two coordinates as reported by the routing service.
type DistanceResult struct {
	DistanceMeters float64
}

// Km converts the raw meter distance for fee resolution.
func (r DistanceResult) Km() float64 { return r.DistanceMeters / 1000 }

// Contract for retrieving a driving-route distance between two coordinates.
type DistanceProvider interface {
	// DrivingDistance returns the route distance from origin to destination.
	// Returns domain.ErrRouteNotFound when the service answers with no route
	// and domain.ErrServiceUnavailable on transport failure.
	DrivingDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
