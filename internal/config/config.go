package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"delivery-fee-service/internal/domain"
)

// Startup-time constants for the Corumbá-MS storefront. All of them can be
// overridden through the environment; the defaults match the restaurant at
// R. Dom Pedro I, 2310.
const (
	defaultOriginLat = -19.00889
	defaultOriginLon = -57.65130

	// Bounding box around Corumbá-MS ("minLon,minLat,maxLon,maxLat")
	// used to constrain geocoding results to the delivery region.
	defaultViewbox = "-57.72,-19.06,-57.58,-18.95"

	defaultState = "MS"
)

// Get returns the environment value for key, or fallback when unset/empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Origin returns the restaurant coordinate, honoring ORIGIN_LAT/ORIGIN_LON.
func Origin() (domain.Coordinates, error) {
	lat, err := getFloat("ORIGIN_LAT", defaultOriginLat)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lon, err := getFloat("ORIGIN_LON", defaultOriginLon)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

// Viewbox returns the regional bounding box for geocoding (GEOCODE_VIEWBOX).
func Viewbox() string {
	return Get("GEOCODE_VIEWBOX", defaultViewbox)
}

// DefaultState returns the state assumed when the customer omits one.
func DefaultState() string {
	return Get("DEFAULT_STATE", defaultState)
}

// FeeTable parses FEE_TABLE ("1.0:7.00,1.5:8.50,...") or falls back to the
// built-in tiers. The table is validated before use.
func FeeTable() (domain.FeeTable, error) {
	raw := strings.TrimSpace(os.Getenv("FEE_TABLE"))
	table := domain.DefaultFeeTable()

	if raw != "" {
		table = table[:0]
		for _, pair := range strings.Split(raw, ",") {
			maxStr, feeStr, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if !ok {
				return nil, fmt.Errorf("config: FEE_TABLE entry %q must be max_km:fee", pair)
			}
			maxKm, err := strconv.ParseFloat(strings.TrimSpace(maxStr), 64)
			if err != nil {
				return nil, fmt.Errorf("config: FEE_TABLE entry %q: %w", pair, err)
			}
			fee, err := strconv.ParseFloat(strings.TrimSpace(feeStr), 64)
			if err != nil {
				return nil, fmt.Errorf("config: FEE_TABLE entry %q: %w", pair, err)
			}
			table = append(table, domain.FeeTier{MaxKm: maxKm, Fee: fee})
		}
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return table, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}
