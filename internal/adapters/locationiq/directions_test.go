package locationiq

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"delivery-fee-service/internal/domain"
)

var (
	testOrigin = domain.Coordinates{Lat: -19.00889, Lon: -57.65130}
	testDest   = domain.Coordinates{Lat: -19.002, Lon: -57.643}
)

func TestDrivingDistance(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/directions/driving/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if !strings.Contains(r.URL.Path, testOrigin.LonLat()+";"+testDest.LonLat()) {
			t.Errorf("path %q missing lon,lat;lon,lat pair", r.URL.Path)
		}
		if got := r.URL.Query().Get("overview"); got != "false" {
			t.Errorf("overview = %q, want false", got)
		}
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":1300.4}]}`))
	}))

	got, err := c.DrivingDistance(context.Background(), testOrigin, testDest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DistanceMeters != 1300.4 {
		t.Errorf("distance = %v, want 1300.4", got.DistanceMeters)
	}
	if km := got.Km(); km != 1.3004 {
		t.Errorf("km = %v, want 1.3004", km)
	}
}

func TestDrivingDistanceNoRoute(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Successful response, empty routes array: no drivable path.
		w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))

	_, err := c.DrivingDistance(context.Background(), testOrigin, testDest)
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestDrivingDistanceServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := c.DrivingDistance(context.Background(), testOrigin, testDest)
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}
