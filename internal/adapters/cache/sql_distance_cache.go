package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"delivery-fee-service/internal/platform/obs"
)

// SQLDistanceCache is a Postgres-backed cache of driving distances keyed by
// origin and destination coordinate strings. With a fixed restaurant origin
// the table stays effectively one row per customer address.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Get fetches the cached distance for a coordinate pair, if present.
func (s *SQLDistanceCache) Get(ctx context.Context, origin, destination string) (_ float64, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return 0, false, errors.New("distance cache: db is nil")
	}

	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return 0, false, errors.New("distance cache: empty coordinate key")
	}

	const q = `
	SELECT meters
	FROM distance_cache
	WHERE origin = $1 AND destination = $2;
	`

	var meters float64
	switch err := s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&meters); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return meters, true, nil
}

// Put stores a coordinate pair -> meters mapping, replacing any existing entry.
func (s *SQLDistanceCache) Put(ctx context.Context, origin, destination string, meters float64) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("distance cache: empty coordinate key")
	}

	const q = `
	INSERT INTO distance_cache (origin, destination, meters)
	VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET meters = EXCLUDED.meters;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, meters); err != nil {
		return fmt.Errorf("insert distance cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
