package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
)

type fakeGeocoder struct {
	calls     int
	lastAddr  domain.Address
	candidate ports.GeocodeCandidate
	err       error
}

func (f *fakeGeocoder) Geocode(_ context.Context, addr domain.Address) (ports.GeocodeCandidate, error) {
	f.calls++
	f.lastAddr = addr
	return f.candidate, f.err
}

type fakeDistancer struct {
	calls  int
	meters float64
	err    error
}

func (f *fakeDistancer) DrivingDistance(_ context.Context, _, _ domain.Coordinates) (ports.DistanceResult, error) {
	f.calls++
	return ports.DistanceResult{DistanceMeters: f.meters}, f.err
}

func testDeps(geo *fakeGeocoder, dist *fakeDistancer) QuoteDeps {
	return QuoteDeps{
		Geocoder:     geo,
		Distance:     dist,
		Origin:       domain.Coordinates{Lat: -19.00889, Lon: -57.65130},
		FeeTable:     domain.DefaultFeeTable(),
		DefaultState: "MS",
	}
}

func validRequest() QuoteRequest {
	return QuoteRequest{
		CEP:    "79331-000",
		Street: "R. Dom Pedro I",
		Number: "100",
		City:   "Corumbá",
	}
}

func TestQuoteDeliveryFee(t *testing.T) {
	geo := &fakeGeocoder{candidate: ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lat: -19.002, Lon: -57.643},
		Type:   "house",
	}}
	dist := &fakeDistancer{meters: 1300}

	result, err := QuoteDeliveryFee(context.Background(), validRequest(), testDeps(geo, dist))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Fee != 8.50 {
		t.Errorf("fee = %.2f, want 8.50", result.Fee)
	}
	if result.RoundedKm != 1.5 {
		t.Errorf("rounded = %v, want 1.5", result.RoundedKm)
	}
	if result.DistanceKm != 1.3 {
		t.Errorf("distance = %v, want 1.3", result.DistanceKm)
	}
}

func TestQuoteDeliveryFeeOutOfCoverage(t *testing.T) {
	geo := &fakeGeocoder{candidate: ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lat: -18.97, Lon: -57.60},
		Type:   "residential",
	}}
	dist := &fakeDistancer{meters: 4700} // rounds to 4.5, table tops out at 4.0

	_, err := QuoteDeliveryFee(context.Background(), validRequest(), testDeps(geo, dist))
	if !errors.Is(err, domain.ErrOutOfCoverage) {
		t.Fatalf("expected ErrOutOfCoverage, got %v", err)
	}
}

func TestQuoteDeliveryFeeInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*QuoteRequest)
	}{
		{"short cep", func(r *QuoteRequest) { r.CEP = "1234567" }},
		{"missing street", func(r *QuoteRequest) { r.Street = " " }},
		{"missing number", func(r *QuoteRequest) { r.Number = "" }},
		{"missing city", func(r *QuoteRequest) { r.City = "" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			geo := &fakeGeocoder{}
			dist := &fakeDistancer{}
			req := validRequest()
			c.mut(&req)

			_, err := QuoteDeliveryFee(context.Background(), req, testDeps(geo, dist))
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if geo.calls != 0 || dist.calls != 0 {
				t.Fatalf("invalid input reached the network: geocode=%d distance=%d", geo.calls, dist.calls)
			}
		})
	}
}

func TestQuoteDeliveryFeeAddressNotFound(t *testing.T) {
	geo := &fakeGeocoder{err: fmt.Errorf("freeform empty: %w", domain.ErrAddressNotFound)}
	dist := &fakeDistancer{}

	_, err := QuoteDeliveryFee(context.Background(), validRequest(), testDeps(geo, dist))
	if !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if dist.calls != 0 {
		t.Fatal("distance was computed for an unresolvable address")
	}
}

func TestQuoteDeliveryFeeRouteNotFound(t *testing.T) {
	geo := &fakeGeocoder{candidate: ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lat: -19.002, Lon: -57.643},
	}}
	dist := &fakeDistancer{err: fmt.Errorf("empty routes: %w", domain.ErrRouteNotFound)}

	_, err := QuoteDeliveryFee(context.Background(), validRequest(), testDeps(geo, dist))
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestQuoteDeliveryFeeNeverReturnsImplicitZero(t *testing.T) {
	geo := &fakeGeocoder{candidate: ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lat: -19.002, Lon: -57.643},
	}}
	dist := &fakeDistancer{err: fmt.Errorf("upstream 503: %w", domain.ErrServiceUnavailable)}

	result, err := QuoteDeliveryFee(context.Background(), validRequest(), testDeps(geo, dist))
	if err == nil {
		t.Fatal("expected an error")
	}
	if result != (QuoteResult{}) {
		t.Fatalf("failure produced a partial result: %+v", result)
	}
}

func TestQuoteDeliveryFeeDefaultState(t *testing.T) {
	geo := &fakeGeocoder{candidate: ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lat: -19.002, Lon: -57.643},
	}}
	dist := &fakeDistancer{meters: 500}

	deps := testDeps(geo, dist)
	req := validRequest()
	req.State = ""

	if _, err := QuoteDeliveryFee(context.Background(), req, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.lastAddr.State != "MS" {
		t.Fatalf("geocoded state = %q, want default MS", geo.lastAddr.State)
	}
}
