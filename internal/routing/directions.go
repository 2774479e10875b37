package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/twpayne/go-polyline"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// directionsRequest is the ORS directions request body.
type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Radiuses    []float64   `json:"radiuses"`
}

// directionsResponse is the slice of the ORS directions payload we use.
type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
		Geometry string `json:"geometry"` // encoded polyline
	} `json:"routes"`
}

// directions routes one leg between two points using the HGV profile and
// returns it converted to miles and hours. This is the single place where
// provider units cross into domain units.
func (c *Client) directions(ctx context.Context, from, to domain.Coordinates) (domain.Leg, error) {
	if err := c.wait(); err != nil {
		return domain.Leg{}, err
	}

	body, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
		Radiuses:    []float64{-1, -1},
	})
	if err != nil {
		return domain.Leg{}, fmt.Errorf("encode directions request: %w", err)
	}

	endpoint := c.baseURL + "/v2/directions/" + c.profile
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return domain.Leg{}, fmt.Errorf("directions: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Leg{}, fmt.Errorf("decode directions response: %w", err)
	}
	if len(decoded.Routes) == 0 {
		return domain.Leg{}, fmt.Errorf("%w: no route found", domain.ErrInvalidInput)
	}

	route := decoded.Routes[0]
	leg := domain.Leg{
		DistanceMiles: route.Summary.Distance / domain.MetersPerMile,
		DurationHours: route.Summary.Duration / 3600,
		Geometry:      route.Geometry,
		Points:        decodeGeometry(route.Geometry),
	}
	return leg, nil
}

// decodeGeometry unpacks an encoded polyline into coordinates.
// A geometry that fails to decode yields nil points rather than failing the
// leg; the summary numbers are what planning depends on.
func decodeGeometry(encoded string) []domain.Coordinates {
	if encoded == "" {
		return nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil
	}

	points := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			continue
		}
		// Polylines encode latitude first.
		points = append(points, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return points
}
