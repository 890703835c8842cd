package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwhitlock/weatherchat/internal/database"
)

// Shared test doubles. Each mock exposes func fields so individual tests
// override just the calls they care about; unset funcs return zero values.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockDB struct {
	CreateLocationFunc             func(ctx context.Context, arg database.CreateLocationParams) (database.Location, error)
	GetLocationByNameFunc          func(ctx context.Context, placeName string) (database.Location, error)
	ListLocationsFunc              func(ctx context.Context) ([]database.Location, error)
	DeleteAllLocationsFunc         func(ctx context.Context) error
	CreateConversationFunc         func(ctx context.Context, arg database.CreateConversationParams) (database.Conversation, error)
	ListConversationsByUserFunc    func(ctx context.Context, userID sql.NullString) ([]database.Conversation, error)
	DeleteExpiredConversationsFunc func(ctx context.Context, expiresAt time.Time) error
	DeleteAllConversationsFunc     func(ctx context.Context) error
}

func (m *mockDB) CreateLocation(ctx context.Context, arg database.CreateLocationParams) (database.Location, error) {
	if m.CreateLocationFunc != nil {
		return m.CreateLocationFunc(ctx, arg)
	}
	return database.Location{}, nil
}

func (m *mockDB) GetLocationByName(ctx context.Context, placeName string) (database.Location, error) {
	if m.GetLocationByNameFunc != nil {
		return m.GetLocationByNameFunc(ctx, placeName)
	}
	return database.Location{}, sql.ErrNoRows
}

func (m *mockDB) ListLocations(ctx context.Context) ([]database.Location, error) {
	if m.ListLocationsFunc != nil {
		return m.ListLocationsFunc(ctx)
	}
	return nil, nil
}

func (m *mockDB) DeleteAllLocations(ctx context.Context) error {
	if m.DeleteAllLocationsFunc != nil {
		return m.DeleteAllLocationsFunc(ctx)
	}
	return nil
}

func (m *mockDB) CreateConversation(ctx context.Context, arg database.CreateConversationParams) (database.Conversation, error) {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(ctx, arg)
	}
	return database.Conversation{}, nil
}

func (m *mockDB) ListConversationsByUser(ctx context.Context, userID sql.NullString) ([]database.Conversation, error) {
	if m.ListConversationsByUserFunc != nil {
		return m.ListConversationsByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockDB) DeleteExpiredConversations(ctx context.Context, expiresAt time.Time) error {
	if m.DeleteExpiredConversationsFunc != nil {
		return m.DeleteExpiredConversationsFunc(ctx, expiresAt)
	}
	return nil
}

func (m *mockDB) DeleteAllConversations(ctx context.Context) error {
	if m.DeleteAllConversationsFunc != nil {
		return m.DeleteAllConversationsFunc(ctx)
	}
	return nil
}

type mockCache struct {
	SetFunc   func(ctx context.Context, key string, value any, expiration time.Duration) error
	GetFunc   func(ctx context.Context, key string, dest any) error
	FlushFunc func(ctx context.Context) error
}

func (m *mockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

func (m *mockCache) Get(ctx context.Context, key string, dest any) error {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return errCacheMiss
}

func (m *mockCache) Flush(ctx context.Context) error {
	if m.FlushFunc != nil {
		return m.FlushFunc(ctx)
	}
	return nil
}

var errCacheMiss = errors.New("cache: key not found")

type mockGeocoder struct {
	GeocodeFunc func(ctx context.Context, placeName string) (Coordinates, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, placeName string) (Coordinates, error) {
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, placeName)
	}
	return Coordinates{Latitude: 39.7392, Longitude: -104.9903}, nil
}

type mockForecaster struct {
	FetchFunc func(ctx context.Context, coords Coordinates) (Forecast, error)
}

func (m *mockForecaster) Fetch(ctx context.Context, coords Coordinates) (Forecast, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, coords)
	}
	return sampleForecast(), nil
}

type mockModel struct {
	InvokeFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockModel) Invoke(ctx context.Context, prompt string) (string, error) {
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, prompt)
	}
	return "", nil
}

type mockConversations struct {
	AppendFunc func(ctx context.Context, answer Answer) error
	appended   []Answer
}

func (m *mockConversations) Append(ctx context.Context, answer Answer) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, answer)
	}
	m.appended = append(m.appended, answer)
	return nil
}

// newTestConfig builds an apiConfig with all collaborators mocked and the AI
// path disabled. Tests flip useAIModel and set cfg.model when they exercise
// the AI path.
func newTestConfig() (*apiConfig, *mockDB, *mockCache, *mockConversations) {
	db := &mockDB{}
	cache := &mockCache{}
	conversations := &mockConversations{}
	cfg := &apiConfig{
		dbQueries:       db,
		cache:           cache,
		conversations:   conversations,
		geocoder:        &mockGeocoder{},
		forecaster:      &mockForecaster{},
		httpClient:      http.DefaultClient,
		logger:          testLogger(),
		retention:       24 * time.Hour,
		refreshInterval: 30 * time.Minute,
		pruneInterval:   time.Hour,
		port:            "8080",
	}
	cfg.interpreter = NewInterpreter(nil, false, cfg.logger)
	cfg.composer = NewComposer(nil, false, cfg.logger)
	return cfg, db, cache, conversations
}

// sampleForecast is a week of NWS-style periods starting Friday, including
// day and night entries for the weekend.
func sampleForecast() Forecast {
	base := time.Date(2026, time.August, 28, 6, 0, 0, 0, time.UTC)
	periods := []struct {
		name      string
		dayOffset int
		daytime   bool
		temp      int
		short     string
		detailed  string
	}{
		{"Today", 0, true, 78, "Partly Sunny", "Partly sunny, with a high near 78."},
		{"Tonight", 0, false, 55, "Mostly Clear", "Mostly clear, with a low around 55."},
		{"Saturday", 1, true, 82, "Sunny", "Sunny, with a high near 82."},
		{"Saturday Night", 1, false, 58, "Partly Cloudy", "Partly cloudy, with a low around 58."},
		{"Sunday", 2, true, 89, "Sunny", "Sunny, with a high near 89."},
		{"Sunday Night", 2, false, 60, "Mostly Clear", "Mostly clear, with a low around 60."},
		{"Monday", 3, true, 75, "Chance Rain Showers", "A chance of rain showers after noon."},
		{"Monday Night", 3, false, 54, "Chance Rain Showers", "A chance of rain showers before midnight."},
		{"Tuesday", 4, true, 70, "Mostly Sunny", "Mostly sunny, with a high near 70."},
	}
	forecast := make(Forecast, 0, len(periods))
	for _, p := range periods {
		start := base.AddDate(0, 0, p.dayOffset)
		if !p.daytime {
			start = start.Add(12 * time.Hour)
		}
		forecast = append(forecast, ForecastPeriod{
			Name:             p.name,
			StartTime:        start,
			EndTime:          start.Add(12 * time.Hour),
			IsDaytime:        p.daytime,
			Temperature:      p.temp,
			TemperatureUnit:  "F",
			ShortForecast:    p.short,
			DetailedForecast: p.detailed,
		})
	}
	return forecast
}
