package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
)

// Geocoded coordinates rarely move; distances only change when the road
// network does. Both still expire so a bad entry cannot live forever.
const (
	geocodeTTL  = 30 * 24 * time.Hour
	distanceTTL = 7 * 24 * time.Hour
)

// RedisGeocodeCache is a Redis-backed cache mapping normalized address
// strings to geocode candidates, stored as JSON entries with a TTL.
type RedisGeocodeCache struct {
	RDB *redis.Client
}

func NewRedisGeocodeCache(rdb *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{RDB: rdb}
}

// geocodeEntry is the stored value. Type and class ride along with the
// coordinate so cached lookups report the same precision as fresh ones.
type geocodeEntry struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Type  string  `json:"type,omitempty"`
	Class string  `json:"class,omitempty"`
}

func (r *RedisGeocodeCache) Get(ctx context.Context, address string) (ports.GeocodeCandidate, bool, error) {
	if r.RDB == nil {
		return ports.GeocodeCandidate{}, false, errors.New("geocode cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return ports.GeocodeCandidate{}, false, errors.New("geocode cache: empty address key")
	}

	val, err := r.RDB.Get(ctx, geocodeKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.GeocodeCandidate{}, false, nil
	}
	if err != nil {
		return ports.GeocodeCandidate{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var entry geocodeEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return ports.GeocodeCandidate{}, false, fmt.Errorf("get geocode cache: malformed entry %q: %w", val, err)
	}

	return ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lon: entry.Lon, Lat: entry.Lat},
		Type:   entry.Type,
		Class:  entry.Class,
	}, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, address string, candidate ports.GeocodeCandidate) error {
	if r.RDB == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("geocode cache: empty address key")
	}

	val, err := json.Marshal(geocodeEntry{
		Lon:   candidate.Coords.Lon,
		Lat:   candidate.Coords.Lat,
		Type:  candidate.Type,
		Class: candidate.Class,
	})
	if err != nil {
		return fmt.Errorf("encode geocode cache entry: %w", err)
	}

	if err := r.RDB.Set(ctx, geocodeKey(address), val, geocodeTTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}

func geocodeKey(address string) string { return "geocode:" + address }
