// Package routing resolves a trip's locations against OpenRouteService and
// produces the normalized RouteSummary the HOS engine consumes.
//
// The package owns every external-API concern the engine must never see:
// geocoding, HTTP retries, the hourly request budget, persistent geocode
// caching, and the meters/seconds to miles/hours conversion, which happens
// here exactly once.
package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// Client talks to OpenRouteService. It is safe for concurrent use; the rate
// limiter and geocode cache are shared across all requests the process makes.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	profile    string
	limiter    *rate.Limiter
	cache      *GeocodeCache
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different ORS endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithGeocodeCache attaches a persistent geocode cache.
func WithGeocodeCache(cache *GeocodeCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHourlyLimit overrides the hourly request budget.
func WithHourlyLimit(n int) Option {
	return func(c *Client) { c.limiter = newHourlyLimiter(n) }
}

// NewClient constructs a Client with the default HGV routing profile and a
// 40-requests-per-hour budget matching the free ORS tier.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("routing: api key is empty")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.openrouteservice.org",
		profile:    "driving-hgv",
		limiter:    newHourlyLimiter(40),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newHourlyLimiter builds a token bucket that refills n requests per hour
// and allows bursting up to the full hourly budget.
func newHourlyLimiter(n int) *rate.Limiter {
	if n <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Hour/time.Duration(n)), n)
}

// PlanRoute geocodes the trip's three locations and routes the two legs
// (current to pickup, pickup to dropoff), returning a RouteSummary already
// converted to miles and hours. The summary's duration is pure driving time;
// loading time is the HOS engine's concern, not the route's.
func (c *Client) PlanRoute(ctx context.Context, trip domain.Trip) (domain.RouteSummary, error) {
	current, err := c.Geocode(ctx, trip.CurrentLocation)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("routing: geocode current location: %w", err)
	}
	pickup, err := c.Geocode(ctx, trip.PickupLocation)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("routing: geocode pickup location: %w", err)
	}
	dropoff, err := c.Geocode(ctx, trip.DropoffLocation)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("routing: geocode dropoff location: %w", err)
	}

	firstLeg, err := c.directions(ctx, current, pickup)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("routing: route current to pickup: %w", err)
	}
	secondLeg, err := c.directions(ctx, pickup, dropoff)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("routing: route pickup to dropoff: %w", err)
	}

	return domain.RouteSummary{
		DistanceMiles: firstLeg.DistanceMiles + secondLeg.DistanceMiles,
		DurationHours: firstLeg.DurationHours + secondLeg.DurationHours,
		Legs:          []domain.Leg{firstLeg, secondLeg},
	}, nil
}

// wait charges one request against the hourly budget without blocking.
// Exceeding the budget surfaces as domain.ErrRateLimited so the API layer
// can answer 429 instead of queueing callers behind a stalled hour.
func (c *Client) wait() error {
	if !c.limiter.Allow() {
		return fmt.Errorf("routing: %w: hourly request budget exhausted", domain.ErrRateLimited)
	}
	return nil
}
