// Package routing provides the HTTP client for the external routing provider.
// It implements services.RouteClient; the caller treats every error as a
// signal to fall back to the straight-line estimate, so this client reports
// failures instead of retrying.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

const cacheTTL = 5 * time.Minute

// routeResponse is the provider's answer to a route query.
type routeResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

// Client queries the routing provider for road distances over HTTP and
// memoizes answers in a TTL cache keyed by the coordinate pair.
type Client struct {
	baseURL string
	http    *http.Client
	cache   ports.Cache
}

// NewClient creates a routing client. cache may be nil to disable
// memoization. The timeout bounds each HTTP call; the distance estimator
// applies its own, shorter context deadline on top.
func NewClient(baseURL string, timeout time.Duration, cache ports.Cache) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if timeout <= 0 {
		return nil, errs.NewValueIsRequiredError("timeout")
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
	}, nil
}

// RouteDistanceKm returns the road distance in kilometers between two points.
func (c *Client) RouteDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	key := cacheKey(from, to)

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			if km, err := strconv.ParseFloat(cached, 64); err == nil {
				return km, nil
			}
		}
	}

	km, err := c.queryProvider(ctx, from, to)
	if err != nil {
		return 0, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, strconv.FormatFloat(km, 'f', -1, 64), cacheTTL)
	}

	return km, nil
}

func (c *Client) queryProvider(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	u, err := url.Parse(c.baseURL + "/route")
	if err != nil {
		return 0, fmt.Errorf("parse routing url: %w", err)
	}

	q := u.Query()
	q.Set("from_lat", formatCoord(from.Lat()))
	q.Set("from_lon", formatCoord(from.Lon()))
	q.Set("to_lat", formatCoord(to.Lat()))
	q.Set("to_lon", formatCoord(to.Lon()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("routing provider returned status %d", resp.StatusCode)
	}

	var route routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return 0, fmt.Errorf("decode routing response: %w", err)
	}

	if route.DistanceKm < 0 {
		return 0, fmt.Errorf("routing provider returned negative distance %f", route.DistanceKm)
	}

	return route.DistanceKm, nil
}

func cacheKey(from, to kernel.GeoPoint) string {
	return "route:" + formatCoord(from.Lat()) + "," + formatCoord(from.Lon()) +
		">" + formatCoord(to.Lat()) + "," + formatCoord(to.Lon())
}

// formatCoord renders a coordinate with enough precision (~1 m) for cache
// keys and query parameters.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}
