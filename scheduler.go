package main

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs the background jobs: refreshing cached forecasts for known
// locations and pruning expired conversations from the archive. Stop waits
// for in-flight jobs to finish.
type Scheduler struct {
	cfg  *apiConfig
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewScheduler(cfg *apiConfig) *Scheduler {
	return &Scheduler{cfg: cfg, stop: make(chan struct{})}
}

func (s *Scheduler) Start() {
	s.wg.Add(2)
	go s.run(s.cfg.refreshInterval, s.cfg.refreshForecasts)
	go s.run(s.cfg.pruneInterval, s.cfg.pruneConversations)
	s.cfg.logger.Info("scheduler started",
		"refresh_interval", s.cfg.refreshInterval,
		"prune_interval", s.cfg.pruneInterval)
}

func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	s.cfg.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(interval time.Duration, job func(context.Context)) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job(context.Background())
		case <-s.stop:
			return
		}
	}
}

// refreshForecasts re-fetches and re-caches the forecast for every archived
// location so interactive queries mostly hit warm cache.
func (cfg *apiConfig) refreshForecasts(ctx context.Context) {
	locations, err := cfg.dbQueries.ListLocations(ctx)
	if err != nil {
		cfg.logger.Error("couldn't list locations for forecast refresh", "error", err)
		return
	}

	var wg sync.WaitGroup
	for _, location := range locations {
		wg.Add(1)
		go func(lat, lon float64, place string) {
			defer wg.Done()
			coords := Coordinates{Latitude: lat, Longitude: lon}
			forecast, err := cfg.forecaster.Fetch(ctx, coords)
			if err != nil {
				upstreamErrorsTotal.WithLabelValues("nws").Inc()
				cfg.logger.Warn("forecast refresh failed", "place", place, "error", err)
				return
			}
			if err := cfg.cache.Set(ctx, forecastCacheKey(coords), forecast, forecastCacheTTL); err != nil {
				cfg.logger.Warn("couldn't cache refreshed forecast", "place", place, "error", err)
			}
		}(location.Latitude, location.Longitude, location.PlaceName)
	}
	wg.Wait()
	cfg.logger.Debug("forecast refresh completed", "locations", len(locations))
}

// pruneConversations deletes archived turns past their expiry.
func (cfg *apiConfig) pruneConversations(ctx context.Context) {
	if err := cfg.dbQueries.DeleteExpiredConversations(ctx, time.Now().UTC()); err != nil {
		cfg.logger.Error("couldn't prune expired conversations", "error", err)
		return
	}
	cfg.logger.Debug("conversation pruning completed")
}
