package locationiq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
)

// Relevance of a geocode result by its type classification. A "house" match
// is a precise point; a "road" match is only the street centerline, which
// skews the distance estimate, so it ranks last among the known types.
var typePriority = map[string]int{
	"house":       1,
	"building":    2,
	"residential": 3,
	"road":        4,
}

const unknownTypePriority = 99

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Class       string `json:"class"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a structured address to a single coordinate.
//
// A structured query runs first because it is the more precise of the two
// modes. When it errors or yields nothing, a freeform query over the
// comma-joined address parts runs against the same regional viewbox. Both
// coming back empty means the address genuinely cannot be located.
func (c *Client) Geocode(ctx context.Context, addr domain.Address) (_ ports.GeocodeCandidate, err error) {
	defer obs.Time(ctx, "liq.geocode")(&err)

	key := normalize(addr.Freeform())

	if c.geocodeCache != nil {
		cached, hit, cacheErr := c.geocodeCache.Get(ctx, key)
		if cacheErr != nil {
			return ports.GeocodeCandidate{}, fmt.Errorf("geocode cache read: %w", cacheErr)
		}
		if hit {
			log.Printf("op=liq.geocode cache=hit address=%q type=%s", key, cached.Type)
			return cached, nil
		}
	}

	results, structuredErr := c.searchStructured(ctx, addr)
	if structuredErr != nil {
		// The structured endpoint failing is not terminal; the freeform
		// query may still locate the address.
		log.Printf("op=liq.geocode mode=structured err=%v", structuredErr)
	}

	if len(results) == 0 {
		results, err = c.searchFreeform(ctx, key)
		if err != nil {
			return ports.GeocodeCandidate{}, fmt.Errorf("freeform search: %w: %v", domain.ErrServiceUnavailable, err)
		}
	}

	if len(results) == 0 {
		return ports.GeocodeCandidate{}, fmt.Errorf("no candidates for %q: %w", key, domain.ErrAddressNotFound)
	}

	best, err := selectBest(results)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("select candidate: %w: %v", domain.ErrServiceUnavailable, err)
	}

	if c.geocodeCache != nil {
		if cacheErr := c.geocodeCache.Put(ctx, key, best); cacheErr != nil {
			log.Printf("op=liq.geocode cache_write_err=%v", cacheErr)
		}
	}

	return best, nil
}

// searchStructured queries /v1/search/structured with separated fields,
// bounded to the regional viewbox.
func (c *Client) searchStructured(ctx context.Context, addr domain.Address) ([]searchResult, error) {
	street := strings.TrimSpace(addr.Number + " " + addr.Street)

	makeReq := func() (*http.Request, error) {
		q := url.Values{}
		q.Set("street", street)
		q.Set("city", addr.City)
		if addr.State != "" {
			q.Set("state", addr.State)
		}
		if domain.ValidCEP(addr.CEP) {
			q.Set("postalcode", domain.NormalizeCEP(addr.CEP))
		}
		q.Set("viewbox", c.viewbox)
		q.Set("bounded", "1")
		q.Set("dedupe", "1")
		q.Set("limit", "5")
		return c.newRequest(ctx, "/v1/search/structured", q)
	}

	return c.search(ctx, makeReq)
}

// searchFreeform queries /v1/search with the whole address as one string,
// country-restricted and bounded to the same viewbox.
func (c *Client) searchFreeform(ctx context.Context, address string) ([]searchResult, error) {
	makeReq := func() (*http.Request, error) {
		q := url.Values{}
		q.Set("q", address)
		q.Set("countrycodes", "br")
		q.Set("viewbox", c.viewbox)
		q.Set("bounded", "1")
		q.Set("limit", "5")
		return c.newRequest(ctx, "/v1/search", q)
	}

	return c.search(ctx, makeReq)
}

func (c *Client) search(ctx context.Context, makeReq func() (*http.Request, error)) ([]searchResult, error) {
	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		// LocationIQ reports "no results" as a 404 body, not an empty list.
		if statusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("execute search: %w", err)
	}
	defer resp.Body.Close()

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return results, nil
}

// selectBest picks the most precise candidate. A single result short-circuits;
// otherwise a stable sort on type priority keeps the service's own relevance
// order among equals. The ranking is logged so road-level matches stay visible.
func selectBest(results []searchResult) (ports.GeocodeCandidate, error) {
	ranked := make([]searchResult, len(results))
	copy(ranked, results)

	if len(ranked) > 1 {
		sort.SliceStable(ranked, func(i, j int) bool {
			return priorityOf(ranked[i].Type) < priorityOf(ranked[j].Type)
		})

		summary := make([]string, 0, len(ranked))
		for _, r := range ranked {
			summary = append(summary, fmt.Sprintf("%s/%s", r.Class, r.Type))
		}
		log.Printf("op=liq.geocode ranked=[%s]", strings.Join(summary, " "))
	}

	best := ranked[0]

	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("parse lat %q: %w", best.Lat, err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("parse lon %q: %w", best.Lon, err)
	}

	return ports.GeocodeCandidate{
		Coords: domain.Coordinates{Lat: lat, Lon: lon},
		Type:   best.Type,
		Class:  best.Class,
	}, nil
}

func priorityOf(t string) int {
	if p, ok := typePriority[t]; ok {
		return p
	}
	return unknownTypePriority
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
