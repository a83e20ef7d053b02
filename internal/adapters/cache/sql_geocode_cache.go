package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized address
// strings to geocode candidates. Address keys are expected to be consistent
// (normalized) by the caller.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Get fetches the cached candidate for an address, if present.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ ports.GeocodeCandidate, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return ports.GeocodeCandidate{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return ports.GeocodeCandidate{}, false, errors.New("geocode cache: empty address key")
	}

	const q = `
	SELECT lon, lat, result_type, result_class
	FROM geocode_cache
	WHERE address = $1;
	`

	var (
		lon, lat   float64
		typ, class string
	)
	switch err := s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &typ, &class); {
	case errors.Is(err, sql.ErrNoRows):
		return ports.GeocodeCandidate{}, false, nil
	case err != nil:
		return ports.GeocodeCandidate{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lon: lon, Lat: lat},
		Type:   typ,
		Class:  class,
	}, true, nil
}

// Put stores an address -> candidate mapping, replacing any existing entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, candidate ports.GeocodeCandidate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("geocode cache: empty address key")
	}

	const q = `
	INSERT INTO geocode_cache (address, lon, lat, result_type, result_class)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (address) DO UPDATE
	SET lon          = EXCLUDED.lon,
		lat          = EXCLUDED.lat,
		result_type  = EXCLUDED.result_type,
		result_class = EXCLUDED.result_class;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, candidate.Coords.Lon, candidate.Coords.Lat, candidate.Type, candidate.Class); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
