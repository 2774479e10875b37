package routing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haultrackr/eld-backend/internal/domain"
)

// GeocodeCache is a SQLite-backed cache mapping normalized addresses to
// coordinates. Geocoding results never go stale for this use case, so
// entries live until the cache file is deleted.
//
// The cache lives in its own local SQLite file rather than Postgres so the
// hourly-budgeted ORS client still saves API calls when the main database
// is unavailable or the service runs against a fresh schema.
type GeocodeCache struct {
	db *sql.DB
}

// NewGeocodeCache wraps the given SQLite handle and creates the cache table
// if it does not exist yet.
func NewGeocodeCache(db *sql.DB) (*GeocodeCache, error) {
	if db == nil {
		return nil, errors.New("routing: geocode cache db is nil")
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address    TEXT PRIMARY KEY,
		lon        REAL NOT NULL,
		lat        REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("routing: init geocode cache schema: %w", err)
	}
	return &GeocodeCache{db: db}, nil
}

// Get returns the cached coordinates for address and whether they were found.
func (g *GeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	const q = `SELECT lon, lat FROM geocode_cache WHERE address = ?`

	var coords domain.Coordinates
	err := g.db.QueryRowContext(ctx, q, address).Scan(&coords.Lon, &coords.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("routing: query geocode cache: %w", err)
	}
	return coords, true, nil
}

// Put stores coordinates for address, replacing any existing entry.
func (g *GeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	const q = `
	INSERT INTO geocode_cache (address, lon, lat) VALUES (?, ?, ?)
	ON CONFLICT(address) DO UPDATE SET lon = excluded.lon, lat = excluded.lat`

	if _, err := g.db.ExecContext(ctx, q, address, coords.Lon, coords.Lat); err != nil {
		return fmt.Errorf("routing: write geocode cache: %w", err)
	}
	return nil
}
