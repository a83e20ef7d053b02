package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
)

// QuoteRequest is the orchestrator's sole input: the customer-supplied
// address for one fee resolution.
type QuoteRequest struct {
	CEP          string
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
}

// QuoteResult is a successful resolution: the fee plus the distance it was
// derived from. A zero fee is never produced implicitly; every failure path
// returns a typed error instead.
type QuoteResult struct {
	Fee        float64
	DistanceKm float64
	RoundedKm  float64
}

// QuoteDeps bundles the collaborators and process-wide constants the
// orchestrator sequences. Everything here is immutable across requests.
type QuoteDeps struct {
	Geocoder ports.Geocoder
	Distance ports.DistanceProvider
	Origin   domain.Coordinates
	FeeTable domain.FeeTable

	// DefaultState fills in the state field when the customer omits it.
	DefaultState string

	// CallTimeout bounds each external call; a timeout surfaces like any
	// other transient service failure. Zero means 10s.
	CallTimeout time.Duration
}

// QuoteDeliveryFee validates the address, geocodes it, computes the driving
// distance from the restaurant origin and maps the half-km-rounded distance
// to a fee tier. Steps are strictly sequential: each needs the previous
// result. The function holds no state across requests.
func QuoteDeliveryFee(ctx context.Context, req QuoteRequest, deps QuoteDeps) (QuoteResult, error) {
	if err := validate(req); err != nil {
		return QuoteResult{}, err
	}

	addr := domain.Address{
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		CEP:          domain.NormalizeCEP(req.CEP),
	}
	if addr.State == "" {
		addr.State = deps.DefaultState
	}

	callTimeout := deps.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}

	geoCtx, cancel := context.WithTimeout(ctx, callTimeout)
	candidate, err := deps.Geocoder.Geocode(geoCtx, addr)
	cancel()
	if err != nil {
		return QuoteResult{}, fmt.Errorf("quote delivery fee: %w", timeoutAsUnavailable(err))
	}

	distCtx, cancel := context.WithTimeout(ctx, callTimeout)
	dist, err := deps.Distance.DrivingDistance(distCtx, deps.Origin, candidate.Coords)
	cancel()
	if err != nil {
		return QuoteResult{}, fmt.Errorf("quote delivery fee: %w", timeoutAsUnavailable(err))
	}

	km := dist.Km()
	rounded := domain.RoundHalfKm(km)

	fee, ok := deps.FeeTable.FeeFor(rounded)
	if !ok {
		// Valid address, just beyond the tier table. The storefront offers
		// a manual quote instead of an error banner for these.
		log.Printf("op=quote result=out_of_coverage rounded_km=%.1f max_km=%.1f", rounded, deps.FeeTable.MaxKm())
		return QuoteResult{}, fmt.Errorf("quote delivery fee: %.1f km exceeds %.1f km: %w", rounded, deps.FeeTable.MaxKm(), domain.ErrOutOfCoverage)
	}

	log.Printf("op=quote distance_km=%.2f rounded_km=%.1f fee=%.2f geocode_type=%s", km, rounded, fee, candidate.Type)

	return QuoteResult{
		Fee:        fee,
		DistanceKm: km,
		RoundedKm:  rounded,
	}, nil
}

// validate rejects incomplete requests before any network call is issued.
func validate(req QuoteRequest) error {
	if !domain.ValidCEP(req.CEP) {
		return fmt.Errorf("quote delivery fee: CEP %q is not 8 digits: %w", req.CEP, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Street) == "" {
		return fmt.Errorf("quote delivery fee: street is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Number) == "" {
		return fmt.Errorf("quote delivery fee: number is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.City) == "" {
		return fmt.Errorf("quote delivery fee: city is required: %w", domain.ErrInvalidInput)
	}
	return nil
}

// timeoutAsUnavailable folds context deadline hits into the transient error
// class; the customer retries both the same way.
func timeoutAsUnavailable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w", err, domain.ErrServiceUnavailable)
	}
	return err
}
