package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config()

	if err := cfg.ConnectDB(); err != nil {
		cfg.logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer cfg.db.Close()

	scheduler := NewScheduler(cfg)
	scheduler.Start()
	defer scheduler.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/weather", cfg.handlerWeatherQuery)
	mux.HandleFunc("GET /api/healthz", cfg.handlerHealthz)
	mux.HandleFunc("GET /api/capabilities", cfg.handlerCapabilities)
	mux.HandleFunc("GET /api/history", cfg.handlerConversationHistory)
	mux.Handle("GET /metrics", promhttp.Handler())
	if cfg.devMode {
		mux.HandleFunc("GET /api/config", cfg.handlerConfig)
		mux.HandleFunc("POST /dev/reset", cfg.handlerReset)
		mux.HandleFunc("POST /dev/runschedulerjobs", cfg.handlerRunSchedulerJobs)
	}

	server := &http.Server{
		Addr:    ":" + cfg.port,
		Handler: metricsMiddleware(corsMiddleware(mux)),
	}
	cfg.logger.Info("starting server", "port", cfg.port)
	if err := server.ListenAndServe(); err != nil {
		cfg.logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
