package locationiq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
)

type directionsResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// DrivingDistance fetches the driving-route distance between two coordinates
// from /v1/directions. Only the distance is requested; route geometry is
// suppressed with overview=false.
func (c *Client) DrivingDistance(ctx context.Context, origin, destination domain.Coordinates) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "liq.directions")(&err)

	originKey := origin.LonLat()
	destKey := destination.LonLat()

	if c.distanceCache != nil {
		meters, hit, cacheErr := c.distanceCache.Get(ctx, originKey, destKey)
		if cacheErr != nil {
			return ports.DistanceResult{}, fmt.Errorf("distance cache read: %w", cacheErr)
		}
		if hit {
			log.Printf("op=liq.directions cache=hit origin=%s destination=%s", originKey, destKey)
			return ports.DistanceResult{DistanceMeters: meters}, nil
		}
	}

	path := fmt.Sprintf("/v1/directions/driving/%s;%s", originKey, destKey)

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		q := url.Values{}
		q.Set("overview", "false")
		return c.newRequest(ctx, path, q)
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("directions request: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("decode directions response: %w: %v", domain.ErrServiceUnavailable, err)
	}

	// A successful response with no routes means the two points are not
	// connected by the driving network, not that the service failed.
	if len(decoded.Routes) == 0 {
		return ports.DistanceResult{}, fmt.Errorf("no route %s -> %s: %w", originKey, destKey, domain.ErrRouteNotFound)
	}

	meters := decoded.Routes[0].Distance

	if c.distanceCache != nil {
		if cacheErr := c.distanceCache.Put(ctx, originKey, destKey, meters); cacheErr != nil {
			log.Printf("op=liq.directions cache_write_err=%v", cacheErr)
		}
	}

	return ports.DistanceResult{DistanceMeters: meters}, nil
}
