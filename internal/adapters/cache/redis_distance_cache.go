package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisDistanceCache is a Redis-backed cache of driving distances keyed by
// origin and destination coordinate strings.
type RedisDistanceCache struct {
	RDB *redis.Client
}

func NewRedisDistanceCache(rdb *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{RDB: rdb}
}

func (r *RedisDistanceCache) Get(ctx context.Context, origin, destination string) (float64, bool, error) {
	if r.RDB == nil {
		return 0, false, errors.New("distance cache: redis client is nil")
	}

	key, err := distanceKey(origin, destination)
	if err != nil {
		return 0, false, err
	}

	val, err := r.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance cache: %w", err)
	}

	meters, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("get distance cache: malformed entry %q: %w", val, err)
	}

	return meters, true, nil
}

func (r *RedisDistanceCache) Put(ctx context.Context, origin, destination string, meters float64) error {
	if r.RDB == nil {
		return errors.New("distance cache: redis client is nil")
	}

	key, err := distanceKey(origin, destination)
	if err != nil {
		return err
	}

	val := strconv.FormatFloat(meters, 'f', -1, 64)
	if err := r.RDB.Set(ctx, key, val, distanceTTL).Err(); err != nil {
		return fmt.Errorf("insert distance cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

func distanceKey(origin, destination string) (string, error) {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return "", errors.New("distance cache: empty coordinate key")
	}
	return "distance:" + origin + "|" + destination, nil
}
