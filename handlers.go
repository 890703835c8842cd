package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

const serviceVersion = "1.0.0"

// handlerWeatherQuery answers POST /api/weather. A missing or blank query is
// the only client error; everything downstream degrades into an apologetic
// 200 so conversational clients never have to special-case server trouble.
func (cfg *apiConfig) handlerWeatherQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", cfg.logger)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "Missing query parameter", cfg.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, cfg.processQuery(r.Context(), req), cfg.logger)
}

func (cfg *apiConfig) handlerHealthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		Service:        "weatherchat",
		Version:        serviceVersion,
		AIModelEnabled: cfg.useAIModel,
	}, cfg.logger)
}

// handlerCapabilities describes what the query pipeline understands, so
// clients can surface example prompts.
func (cfg *apiConfig) handlerCapabilities(w http.ResponseWriter, r *http.Request) {
	type capabilitiesResponse struct {
		Days      []string `json:"days"`
		Aspects   []string `json:"aspects"`
		Questions []string `json:"questions"`
		Examples  []string `json:"examples"`
	}
	respondWithJSON(w, http.StatusOK, capabilitiesResponse{
		Days: []string{
			"today", "tomorrow", "monday", "tuesday", "wednesday", "thursday",
			"friday", "saturday", "sunday", "this weekend", "this week",
		},
		Aspects:   []string{"rain", "snow", "temperature", "wind", "general"},
		Questions: []string{"yes/no", "informational"},
		Examples: []string{
			"Will it rain in Denver on Sunday?",
			"What's the temperature in New York today?",
			"What's the weather like in Chicago this weekend?",
		},
	}, cfg.logger)
}

// handlerConversationHistory returns the archived turns for a user, newest
// first.
func (cfg *apiConfig) handlerConversationHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", cfg.logger)
		return
	}
	conversations, err := cfg.dbQueries.ListConversationsByUser(r.Context(), nullString(userID))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Couldn't read conversation history", cfg.logger)
		return
	}
	records := make([]conversationRecord, 0, len(conversations))
	for _, c := range conversations {
		records = append(records, databaseConversationToRecord(c))
	}
	respondWithJSON(w, http.StatusOK, records, cfg.logger)
}

func (cfg *apiConfig) handlerConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ConfigResponse{
		DevMode:         cfg.devMode,
		AIModelEnabled:  cfg.useAIModel,
		ModelID:         cfg.modelID,
		RefreshInterval: cfg.refreshInterval.String(),
		PruneInterval:   cfg.pruneInterval.String(),
		RetentionWindow: cfg.retention.String(),
		DefaultLocation: cfg.defaultLocation,
	}, cfg.logger)
}

// handlerReset wipes the cache and both archive tables. Dev mode only.
func (cfg *apiConfig) handlerReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := cfg.dbQueries.DeleteAllConversations(ctx); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Couldn't delete conversations", cfg.logger)
		return
	}
	if err := cfg.dbQueries.DeleteAllLocations(ctx); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Couldn't delete locations", cfg.logger)
		return
	}
	if err := cfg.cache.Flush(ctx); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Couldn't flush cache", cfg.logger)
		return
	}
	cfg.logger.Info("state reset")
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "reset"}, cfg.logger)
}

// handlerRunSchedulerJobs triggers both scheduler jobs immediately. Dev mode
// only.
func (cfg *apiConfig) handlerRunSchedulerJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg.refreshForecasts(ctx)
	cfg.pruneConversations(ctx)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "jobs completed"}, cfg.logger)
}
