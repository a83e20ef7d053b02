package services

import (
	"context"
	"fmt"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
)

// LookupPostalCode resolves a raw CEP into the partial address the customer
// completes with a house number. Malformed codes are rejected here, before
// any network call; re-entry is the caller's retry strategy.
func LookupPostalCode(ctx context.Context, rawCEP string, directory ports.PostalDirectory) (domain.PartialAddress, error) {
	clean := domain.NormalizeCEP(rawCEP)
	if len(clean) != 8 {
		return domain.PartialAddress{}, fmt.Errorf("lookup postal code: %q is not an 8-digit CEP: %w", rawCEP, domain.ErrInvalidInput)
	}

	addr, err := directory.Lookup(ctx, clean)
	if err != nil {
		return domain.PartialAddress{}, fmt.Errorf("lookup postal code %s: %w", clean, err)
	}

	return addr, nil
}
