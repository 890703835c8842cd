package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mwhitlock/weatherchat/internal/database"
)

// The canonical end-to-end case: a yes/no rain question against a sunny
// forecast answers "No" and carries the day's temperature and conditions.
func TestProcessQueryEndToEnd(t *testing.T) {
	cfg, _, _, conversations := newTestConfig()

	resp := cfg.processQuery(context.Background(), QueryRequest{
		Query:  "Will it rain in Denver on Sunday?",
		UserID: "user-1",
	})

	if !strings.HasPrefix(resp.Response, "No") {
		t.Errorf("expected a No answer, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "89") {
		t.Errorf("expected the Sunday temperature, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "Sunny") {
		t.Errorf("expected the Sunday conditions, got %q", resp.Response)
	}
	if resp.AIEnhanced {
		t.Error("rule-based run must not be marked ai_enhanced")
	}
	if resp.Query != "Will it rain in Denver on Sunday?" || resp.UserID != "user-1" {
		t.Errorf("response should echo the request, got %+v", resp)
	}
	if resp.Timestamp == "" {
		t.Error("response should carry a timestamp")
	}
	if len(conversations.appended) != 1 {
		t.Fatalf("expected 1 persisted turn, got %d", len(conversations.appended))
	}
	if conversations.appended[0].ResponseText != resp.Response {
		t.Error("persisted turn should match the delivered answer")
	}
}

// With the AI path down at every stage, the pipeline still answers.
func TestProcessQuerySurvivesAIPathFailure(t *testing.T) {
	cfg, _, _, _ := newTestConfig()
	model := &mockModel{InvokeFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("bedrock unavailable")
	}}
	cfg.interpreter = NewInterpreter(model, true, cfg.logger)
	cfg.composer = NewComposer(model, true, cfg.logger)

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Denver on Sunday?"})

	if !strings.HasPrefix(resp.Response, "No") {
		t.Errorf("expected the rule-based answer, got %q", resp.Response)
	}
	if resp.AIEnhanced {
		t.Error("fully degraded run must not be marked ai_enhanced")
	}
}

func TestProcessQueryAIEnhancedFlag(t *testing.T) {
	cfg, _, _, _ := newTestConfig()
	model := &mockModel{InvokeFunc: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Extract structured fields") {
			return "location: denver\nday: sunday\naspect: rain\nquestion: yes_no", nil
		}
		return "No rain on Sunday, just sunshine at 89°F.", nil
	}}
	cfg.interpreter = NewInterpreter(model, true, cfg.logger)
	cfg.composer = NewComposer(model, true, cfg.logger)

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Denver on Sunday?"})
	if !resp.AIEnhanced {
		t.Error("AI-served run should be marked ai_enhanced")
	}
	if resp.Response != "No rain on Sunday, just sunshine at 89°F." {
		t.Errorf("expected the model's answer, got %q", resp.Response)
	}
}

func TestProcessQueryNoLocation(t *testing.T) {
	cfg, _, _, conversations := newTestConfig()

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain on Sunday?"})
	if resp.Response != noLocationResponse {
		t.Errorf("got %q, want the no-location guidance", resp.Response)
	}
	if len(conversations.appended) != 1 {
		t.Error("degraded turns should be persisted too")
	}
}

func TestProcessQueryDefaultLocation(t *testing.T) {
	cfg, _, _, _ := newTestConfig()
	cfg.defaultLocation = "Denver"
	geocoded := ""
	cfg.geocoder = &mockGeocoder{GeocodeFunc: func(ctx context.Context, placeName string) (Coordinates, error) {
		geocoded = placeName
		return Coordinates{Latitude: 39.7392, Longitude: -104.9903}, nil
	}}

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain on Sunday?"})
	if geocoded != "Denver" {
		t.Errorf("expected the default location to be geocoded, got %q", geocoded)
	}
	if !strings.HasPrefix(resp.Response, "No") {
		t.Errorf("expected a real answer via the default location, got %q", resp.Response)
	}
}

func TestProcessQueryUnknownPlace(t *testing.T) {
	cfg, _, _, _ := newTestConfig()
	cfg.geocoder = &mockGeocoder{GeocodeFunc: func(ctx context.Context, placeName string) (Coordinates, error) {
		return Coordinates{}, ErrNoResultsFound
	}}

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Xyzzyville?"})
	if resp.Response != noLocationResponse {
		t.Errorf("got %q, want the no-location guidance", resp.Response)
	}
}

func TestProcessQueryUpstreamDown(t *testing.T) {
	cfg, _, _, _ := newTestConfig()
	cfg.forecaster = &mockForecaster{FetchFunc: func(ctx context.Context, coords Coordinates) (Forecast, error) {
		return nil, errors.New("connection refused")
	}}

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Denver on Sunday?"})
	if resp.Response != upstreamDownResponse {
		t.Errorf("got %q, want the upstream-down apology", resp.Response)
	}
}

// A day outside the forecast horizon gets the no-data answer, not an error.
func TestProcessQueryBeyondHorizon(t *testing.T) {
	cfg, _, _, _ := newTestConfig()

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Denver on Wednesday?"})
	if resp.Response != noDataResponse {
		t.Errorf("got %q, want the no-data response", resp.Response)
	}
}

// Persistence failures are logged, never surfaced: the user still gets the
// composed answer.
func TestProcessQuerySurvivesPersistenceFailure(t *testing.T) {
	cfg, db, _, conversations := newTestConfig()
	conversations.AppendFunc = func(ctx context.Context, answer Answer) error {
		return errors.New("redis down")
	}
	db.CreateConversationFunc = func(ctx context.Context, arg database.CreateConversationParams) (database.Conversation, error) {
		return database.Conversation{}, errors.New("postgres down")
	}

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Denver on Sunday?"})
	if !strings.HasPrefix(resp.Response, "No") {
		t.Errorf("expected the composed answer despite persistence failure, got %q", resp.Response)
	}
}

// The archive row records the same text and flag delivered to the user.
func TestProcessQueryArchivesAnswer(t *testing.T) {
	cfg, db, _, _ := newTestConfig()
	var archived database.CreateConversationParams
	db.CreateConversationFunc = func(ctx context.Context, arg database.CreateConversationParams) (database.Conversation, error) {
		archived = arg
		return database.Conversation{}, nil
	}

	resp := cfg.processQuery(context.Background(), QueryRequest{Query: "Will it rain in Denver on Sunday?", UserID: "user-1"})
	if archived.Response != resp.Response {
		t.Errorf("archived %q, delivered %q", archived.Response, resp.Response)
	}
	if archived.UserID.String != "user-1" || !archived.UserID.Valid {
		t.Errorf("archived user = %+v, want user-1", archived.UserID)
	}
	if !archived.ExpiresAt.After(archived.CreatedAt) {
		t.Error("archive row should expire after creation")
	}
}
