package ports

import (
	"context"
)

// Persistent cache mapping normalized address strings to selected geocode
// candidates. The whole candidate is stored, not just the coordinate, so a
// hit carries the same type information as a fresh lookup.
// A miss is (zero, false, nil); errors are reserved for backend failures.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (GeocodeCandidate, bool, error)
	Put(ctx context.Context, address string, candidate GeocodeCandidate) error
}

// Persistent cache of driving distances keyed by origin and destination
// coordinate strings ("lon,lat").
type DistanceCache interface {
	Get(ctx context.Context, origin, destination string) (float64, bool, error)
	Put(ctx context.Context, origin, destination string, meters float64) error
}
