package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func respondWithError(w http.ResponseWriter, code int, msg string, logger *slog.Logger) {
	if code > 499 {
		logger.Error("responding with 5XX error", "code", code, "message", msg)
	}
	type errorResponse struct {
		Error string `json:"error"`
	}
	respondWithJSON(w, code, errorResponse{Error: msg}, logger)
}

func respondWithJSON(w http.ResponseWriter, code int, payload any, logger *slog.Logger) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("error marshalling JSON response", "error", err, "payload", payload)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
