package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mwhitlock/weatherchat/internal/database"
)

func TestRefreshForecasts(t *testing.T) {
	cfg, db, cache, _ := newTestConfig()
	db.ListLocationsFunc = func(ctx context.Context) ([]database.Location, error) {
		return []database.Location{
			{PlaceName: "denver", Latitude: 39.7392, Longitude: -104.9903},
			{PlaceName: "new york", Latitude: 40.7128, Longitude: -74.006},
		}, nil
	}
	var mu sync.Mutex
	cachedKeys := map[string]bool{}
	cache.SetFunc = func(ctx context.Context, key string, value any, expiration time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		cachedKeys[key] = true
		return nil
	}

	cfg.refreshForecasts(context.Background())

	if len(cachedKeys) != 2 {
		t.Fatalf("cached %d forecasts, want 2", len(cachedKeys))
	}
	if !cachedKeys[forecastCacheKey(Coordinates{Latitude: 39.7392, Longitude: -104.9903})] {
		t.Error("missing the Denver forecast key")
	}
}

// One failing location does not stop the rest from refreshing.
func TestRefreshForecastsPartialFailure(t *testing.T) {
	cfg, db, cache, _ := newTestConfig()
	db.ListLocationsFunc = func(ctx context.Context) ([]database.Location, error) {
		return []database.Location{
			{PlaceName: "denver", Latitude: 39.7392, Longitude: -104.9903},
			{PlaceName: "atlantis", Latitude: 0, Longitude: 0},
		}, nil
	}
	cfg.forecaster = &mockForecaster{FetchFunc: func(ctx context.Context, coords Coordinates) (Forecast, error) {
		if coords.Latitude == 0 {
			return nil, errors.New("no gridpoint")
		}
		return sampleForecast(), nil
	}}
	var mu sync.Mutex
	cached := 0
	cache.SetFunc = func(ctx context.Context, key string, value any, expiration time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		cached++
		return nil
	}

	cfg.refreshForecasts(context.Background())
	if cached != 1 {
		t.Errorf("cached %d forecasts, want 1", cached)
	}
}

func TestPruneConversations(t *testing.T) {
	cfg, db, _, _ := newTestConfig()
	var cutoff time.Time
	db.DeleteExpiredConversationsFunc = func(ctx context.Context, expiresAt time.Time) error {
		cutoff = expiresAt
		return nil
	}

	before := time.Now().UTC()
	cfg.pruneConversations(context.Background())
	if cutoff.Before(before) {
		t.Errorf("prune cutoff %v should not predate the call", cutoff)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	cfg, db, _, _ := newTestConfig()
	cfg.refreshInterval = 10 * time.Millisecond
	cfg.pruneInterval = 10 * time.Millisecond

	var mu sync.Mutex
	pruned := 0
	db.DeleteExpiredConversationsFunc = func(ctx context.Context, expiresAt time.Time) error {
		mu.Lock()
		defer mu.Unlock()
		pruned++
		return nil
	}

	scheduler := NewScheduler(cfg)
	scheduler.Start()
	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()

	mu.Lock()
	defer mu.Unlock()
	if pruned == 0 {
		t.Error("expected at least one prune run before Stop")
	}
}
