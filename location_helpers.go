package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwhitlock/weatherchat/internal/database"
)

// resolveCoordinates turns a place name into coordinates, checking the cache
// first, then the locations archive, then the geocoding service. Fresh
// results are written back to both so repeat queries for the same place skip
// the network. Archive failures are logged and swallowed; a working geocoder
// is enough to answer the query.
func (cfg *apiConfig) resolveCoordinates(ctx context.Context, placeName string) (Coordinates, error) {
	key := normalizePlaceName(placeName)
	cacheKey := "geocode:" + key

	var coords Coordinates
	if err := cfg.cache.Get(ctx, cacheKey, &coords); err == nil {
		return coords, nil
	}

	location, err := cfg.dbQueries.GetLocationByName(ctx, key)
	if err == nil {
		coords = Coordinates{Latitude: location.Latitude, Longitude: location.Longitude}
		cfg.cacheCoordinates(ctx, cacheKey, coords)
		return coords, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		cfg.logger.Warn("couldn't read locations archive", "place", key, "error", err)
	}

	coords, err = cfg.geocoder.Geocode(ctx, placeName)
	if err != nil {
		if !errors.Is(err, ErrNoResultsFound) {
			upstreamErrorsTotal.WithLabelValues("nominatim").Inc()
		}
		return Coordinates{}, fmt.Errorf("couldn't geocode %q: %w", placeName, err)
	}

	if _, err := cfg.dbQueries.CreateLocation(ctx, database.CreateLocationParams{
		PlaceName: key,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}); err != nil {
		cfg.logger.Warn("couldn't archive location", "place", key, "error", err)
	}
	cfg.cacheCoordinates(ctx, cacheKey, coords)
	return coords, nil
}

func (cfg *apiConfig) cacheCoordinates(ctx context.Context, cacheKey string, coords Coordinates) {
	if err := cfg.cache.Set(ctx, cacheKey, coords, geocodeCacheTTL); err != nil {
		cfg.logger.Warn("couldn't cache coordinates", "key", cacheKey, "error", err)
	}
}
