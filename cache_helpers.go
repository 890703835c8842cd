package main

import (
	"context"
	"fmt"
	"time"
)

const (
	// geocodeCacheTTL is long because coordinates for a place never move.
	geocodeCacheTTL = 24 * time.Hour
	// forecastCacheTTL matches how often the NWS refreshes gridpoint data.
	forecastCacheTTL = 30 * time.Minute
)

func forecastCacheKey(coords Coordinates) string {
	return fmt.Sprintf("forecast:%.4f,%.4f", coords.Latitude, coords.Longitude)
}

// fetchForecastCached returns the cached forecast for the coordinates or
// fetches a fresh one and caches it.
func (cfg *apiConfig) fetchForecastCached(ctx context.Context, coords Coordinates) (Forecast, error) {
	key := forecastCacheKey(coords)

	var forecast Forecast
	if err := cfg.cache.Get(ctx, key, &forecast); err == nil && len(forecast) > 0 {
		return forecast, nil
	}

	forecast, err := cfg.forecaster.Fetch(ctx, coords)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues("nws").Inc()
		return nil, err
	}
	if err := cfg.cache.Set(ctx, key, forecast, forecastCacheTTL); err != nil {
		cfg.logger.Warn("couldn't cache forecast", "key", key, "error", err)
	}
	return forecast, nil
}
