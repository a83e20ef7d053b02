package ports

import (
	"context"

	"delivery-fee-service/internal/domain"
)

// Contract for resolving an 8-digit CEP into a partial street address.
type PostalDirectory interface {
	// Lookup returns the directory record for a normalized 8-digit code.
	// Returns domain.ErrCEPNotFound when the directory has no match and
	// domain.ErrServiceUnavailable on transport failure.
	Lookup(ctx context.Context, cep string) (domain.PartialAddress, error)
}
