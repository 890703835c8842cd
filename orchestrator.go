package main

import (
	"context"
	"errors"
	"time"
)

// Degraded answers still return HTTP 200; the body carries an apology
// instead of a forecast. The error kind only drives logging and metrics.
const (
	noLocationResponse   = `I couldn't tell which place you're asking about. Try naming a city, like "Will it rain in Denver on Sunday?"`
	upstreamDownResponse = "I'm sorry, I couldn't reach the weather service right now. Please try again in a moment!"
)

// processQuery runs the full pipeline for one query: interpret, resolve the
// location, fetch the forecast, select periods, compose, persist. Every step
// degrades rather than fails, so the returned response is always a complete
// answer the handler can serialize.
func (cfg *apiConfig) processQuery(ctx context.Context, req QueryRequest) QueryResponse {
	now := time.Now().UTC()
	parsed := cfg.interpreter.Interpret(ctx, req.Query)

	place := parsed.Location.Value
	if place == "" {
		if cfg.defaultLocation == "" {
			cfg.logger.Info("query carried no resolvable location", "query", req.Query)
			return cfg.degradedResponse(ctx, req, now, noLocationResponse, parsed.AIEnhanced())
		}
		cfg.logger.Debug("falling back to default location", "default", cfg.defaultLocation)
		place = cfg.defaultLocation
	}

	coords, err := cfg.resolveCoordinates(ctx, place)
	if err != nil {
		if errors.Is(err, ErrNoResultsFound) {
			cfg.logger.Info("location did not resolve", "place", place)
			return cfg.degradedResponse(ctx, req, now, noLocationResponse, parsed.AIEnhanced())
		}
		cfg.logger.Error("geocoding unavailable", "place", place, "error", err)
		return cfg.degradedResponse(ctx, req, now, upstreamDownResponse, parsed.AIEnhanced())
	}

	forecast, err := cfg.fetchForecastCached(ctx, coords)
	if err != nil {
		cfg.logger.Error("forecast unavailable", "place", place, "error", err)
		return cfg.degradedResponse(ctx, req, now, upstreamDownResponse, parsed.AIEnhanced())
	}

	periods := selectPeriods(forecast, parsed.TargetDay.Value)
	text, composedViaAI := cfg.composer.Compose(ctx, req.Query, periods, parsed.Aspect.Value, parsed.QuestionType.Value)

	answer := Answer{
		ResponseText: text,
		Query:        req.Query,
		UserID:       req.UserID,
		SessionID:    req.SessionID,
		Timestamp:    now,
		AIEnhanced:   parsed.AIEnhanced() || composedViaAI,
	}
	cfg.persistAnswer(ctx, answer)
	return answerToResponse(answer)
}

// degradedResponse wraps an apology as a regular answer. Degraded turns are
// persisted like any other so the conversation log reflects what the user
// was told.
func (cfg *apiConfig) degradedResponse(ctx context.Context, req QueryRequest, now time.Time, text string, aiEnhanced bool) QueryResponse {
	answer := Answer{
		ResponseText: text,
		Query:        req.Query,
		UserID:       req.UserID,
		SessionID:    req.SessionID,
		Timestamp:    now,
		AIEnhanced:   aiEnhanced,
	}
	cfg.persistAnswer(ctx, answer)
	return answerToResponse(answer)
}

func answerToResponse(answer Answer) QueryResponse {
	return QueryResponse{
		Response:   answer.ResponseText,
		Query:      answer.Query,
		UserID:     answer.UserID,
		SessionID:  answer.SessionID,
		Timestamp:  answer.Timestamp.Format(time.RFC3339),
		AIEnhanced: answer.AIEnhanced,
	}
}
