package ports

import (
	"context"

	"delivery-fee-service/internal/domain"
)

// GeocodeCandidate is one ranked result from the geocoding service.
// Type drives candidate selection ("house" beats "road"); Class is kept
// for diagnostic logging only.
type GeocodeCandidate struct {
	Coords domain.Coordinates
	Type   string
	Class  string
}

// Contract for turning a structured address into a best-guess coordinate.
type Geocoder interface {
	// Geocode returns the selected candidate for the address.
	// Returns domain.ErrAddressNotFound when every strategy yields zero
	// candidates and domain.ErrServiceUnavailable on transport failure.
	Geocode(ctx context.Context, addr domain.Address) (GeocodeCandidate, error)
}
