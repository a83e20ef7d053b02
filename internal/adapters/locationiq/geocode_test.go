package locationiq

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"delivery-fee-service/internal/domain"
)

const testViewbox = "-57.72,-19.06,-57.58,-18.95"

func testAddress() domain.Address {
	return domain.Address{
		Street: "R. Dom Pedro I",
		Number: "2310",
		City:   "Corumbá",
		State:  "MS",
		CEP:    "79331000",
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", testViewbox, nil, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.SetBaseURL(srv.URL)
	c.session = srv.Client()

	return c, srv
}

func TestGeocodeStructuredPreferred(t *testing.T) {
	var freeformCalls atomic.Int64

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/search/structured":
			if got := r.URL.Query().Get("street"); got != "2310 R. Dom Pedro I" {
				t.Errorf("structured street = %q", got)
			}
			if got := r.URL.Query().Get("viewbox"); got != testViewbox {
				t.Errorf("structured viewbox = %q", got)
			}
			w.Write([]byte(`[{"lat":"-19.009","lon":"-57.651","type":"house","class":"place"}]`))
		case "/v1/search":
			freeformCalls.Add(1)
			w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	got, err := c.Geocode(context.Background(), testAddress())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != "house" {
		t.Errorf("candidate type = %q, want house", got.Type)
	}
	if got.Coords.Lat != -19.009 || got.Coords.Lon != -57.651 {
		t.Errorf("coords = %+v", got.Coords)
	}
	if freeformCalls.Load() != 0 {
		t.Errorf("freeform was called %d times despite structured results", freeformCalls.Load())
	}
}

func TestGeocodeFreeformFallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/search/structured":
			// LocationIQ reports "no results" with a 404 body.
			http.Error(w, `{"error":"Unable to geocode"}`, http.StatusNotFound)
		case "/v1/search":
			if got := r.URL.Query().Get("countrycodes"); got != "br" {
				t.Errorf("freeform countrycodes = %q", got)
			}
			w.Write([]byte(`[{"lat":"-19.010","lon":"-57.650","type":"residential","class":"place"}]`))
		}
	}))

	got, err := c.Geocode(context.Background(), testAddress())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != "residential" {
		t.Errorf("candidate type = %q, want residential (freeform result)", got.Type)
	}
}

func TestGeocodeBothEmpty(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Unable to geocode"}`, http.StatusNotFound)
	}))

	_, err := c.Geocode(context.Background(), testAddress())
	if !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestGeocodeFreeformTransportFailure(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	srv.Close()

	_, err := c.Geocode(context.Background(), testAddress())
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestSelectBestPrefersHouse(t *testing.T) {
	// Same candidates in every order; "house" must always win.
	perms := [][]searchResult{
		{
			{Lat: "1", Lon: "1", Type: "road"},
			{Lat: "2", Lon: "2", Type: "house"},
			{Lat: "3", Lon: "3", Type: "residential"},
		},
		{
			{Lat: "2", Lon: "2", Type: "house"},
			{Lat: "3", Lon: "3", Type: "residential"},
			{Lat: "1", Lon: "1", Type: "road"},
		},
		{
			{Lat: "3", Lon: "3", Type: "residential"},
			{Lat: "1", Lon: "1", Type: "road"},
			{Lat: "2", Lon: "2", Type: "house"},
		},
	}

	for i, results := range perms {
		best, err := selectBest(results)
		if err != nil {
			t.Fatalf("perm %d: unexpected error: %v", i, err)
		}
		if best.Type != "house" {
			t.Errorf("perm %d: selected %q, want house", i, best.Type)
		}
	}
}

func TestSelectBestUnknownTypeRanksLast(t *testing.T) {
	best, err := selectBest([]searchResult{
		{Lat: "1", Lon: "1", Type: "hamlet"},
		{Lat: "2", Lon: "2", Type: "road"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Type != "road" {
		t.Errorf("selected %q, want road over unknown type", best.Type)
	}
}

func TestSelectBestSingleResult(t *testing.T) {
	best, err := selectBest([]searchResult{{Lat: "-19.5", Lon: "-57.6", Type: "road"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Coords.Lat != -19.5 {
		t.Errorf("lat = %v", best.Coords.Lat)
	}
}
