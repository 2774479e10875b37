package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// geocodeResponse is the slice of the ORS geocode payload we care about.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-text location to coordinates, consulting the
// persistent cache before spending a request from the hourly budget.
func (c *Client) Geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	norm := normalize(location)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: location is empty", domain.ErrInvalidInput)
	}

	if c.cache != nil {
		if coords, ok, err := c.cache.Get(ctx, norm); err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache read: %w", err)
		} else if ok {
			return coords, nil
		}
	}

	if err := c.wait(); err != nil {
		return domain.Coordinates{}, err
	}

	endpoint := c.baseURL + "/geocode/search"
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", location, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: no geocode results for %q", domain.ErrInvalidInput, location)
	}

	raw := decoded.Features[0].Geometry.Coordinates
	if len(raw) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", location)
	}

	coords := domain.Coordinates{Lon: raw[0], Lat: raw[1]}

	if c.cache != nil {
		// A failed cache write costs a future API call, not correctness.
		if err := c.cache.Put(ctx, norm, coords); err != nil {
			slog.Warn("geocode cache write failed", "error", err)
		}
	}

	return coords, nil
}

// normalize collapses whitespace so cache keys are consistent.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
