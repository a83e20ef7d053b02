package locationiq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"delivery-fee-service/internal/ports"
)

// Client talks to LocationIQ for both geocoding and driving directions.
//
// It coordinates:
//   - Structured-then-freeform geocoding with candidate ranking
//   - Persistent geocode and distance caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	viewbox       string
	geocodeCache  ports.GeocodeCache
	distanceCache ports.DistanceCache
}

func NewClient(apiKey, viewbox string, geocodeCache ports.GeocodeCache, distanceCache ports.DistanceCache) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("locationiq: api key is empty")
	}
	if viewbox == "" {
		return nil, errors.New("locationiq: viewbox is empty")
	}

	return &Client{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       "https://us1.locationiq.com",
		viewbox:       viewbox,
		geocodeCache:  geocodeCache,
		distanceCache: distanceCache,
	}, nil
}

// SetBaseURL points the client at a fake server. Tests only.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	query.Set("key", c.apiKey)
	query.Set("format", "json")
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// statusCode extracts the upstream HTTP status from an error chain, 0 if none.
func statusCode(err error) int {
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
