package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const userAgent = "weatherchat/1.0 (github.com/mwhitlock/weatherchat)"

// apiConfig holds every dependency of the service. Handlers, jobs and
// helpers hang off it as methods; collaborators are interfaces so tests can
// substitute fakes.
type apiConfig struct {
	db              *sql.DB
	dbQueries       dbQuerier
	cache           Cache
	conversations   ConversationStore
	geocoder        GeocodingService
	forecaster      ForecastService
	model           ModelInvoker
	interpreter     *Interpreter
	composer        *Composer
	httpClient      *http.Client
	newDBClientFunc func(driverName, dataSourceName string) (*sql.DB, error)
	logger          *slog.Logger

	port            string
	devMode         bool
	dbURL           string
	useAIModel      bool
	modelID         string
	defaultLocation string
	retention       time.Duration
	refreshInterval time.Duration
	pruneInterval   time.Duration
}

// config reads the environment and assembles the service. Missing required
// variables are fatal; an unreachable Bedrock configuration only disables
// the AI path, since the rule-based path can answer everything on its own.
func config() *apiConfig {
	devMode := os.Getenv("DEV_MODE") == "true"
	logger := newLogger(devMode)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	cfg := &apiConfig{
		logger:          logger,
		devMode:         devMode,
		port:            getEnv("PORT", "8080", logger),
		dbURL:           getRequiredEnv("DB_URL", logger),
		useAIModel:      getEnv("USE_AI_MODEL", "true", logger) == "true",
		modelID:         getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-sonnet-20240229-v1:0", logger),
		defaultLocation: getEnv("DEFAULT_LOCATION", "", logger),
		retention:       time.Duration(getEnvAsInt("CONVERSATION_RETENTION_HOURS", 24, logger)) * time.Hour,
		refreshInterval: time.Duration(getEnvAsInt("FORECAST_REFRESH_MIN", 30, logger)) * time.Minute,
		pruneInterval:   time.Duration(getEnvAsInt("PRUNE_INTERVAL_MIN", 60, logger)) * time.Minute,
		newDBClientFunc: sql.Open,
	}

	upstreamTimeout := time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SEC", 10, logger)) * time.Second
	cfg.httpClient = &http.Client{Timeout: upstreamTimeout}

	redisClient := redis.NewClient(&redis.Options{Addr: getRequiredEnv("REDIS_URL", logger)})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("couldn't connect to Redis", "error", err)
		os.Exit(1)
	}
	cfg.cache = NewRedisCache(redisClient)
	cfg.conversations = NewRedisConversationStore(cfg.cache, cfg.retention)

	cfg.geocoder = NewNominatimGeocodingService(
		getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org", logger),
		userAgent,
		cfg.httpClient,
	)
	cfg.forecaster = NewNWSForecastService(
		getEnv("NWS_BASE_URL", "https://api.weather.gov", logger),
		userAgent,
		cfg.httpClient,
	)

	if cfg.useAIModel {
		aiTimeout := time.Duration(getEnvAsInt("AI_TIMEOUT_SEC", 10, logger)) * time.Second
		model, err := NewBedrockModelService(context.Background(), cfg.modelID, aiTimeout, logger)
		if err != nil {
			logger.Warn("AI model unavailable, running rule-based only", "error", err)
			cfg.useAIModel = false
		} else {
			cfg.model = model
		}
	}
	cfg.interpreter = NewInterpreter(cfg.model, cfg.useAIModel, logger)
	cfg.composer = NewComposer(cfg.model, cfg.useAIModel, logger)

	logger.Info("configuration loaded", "port", cfg.port, "dev_mode", cfg.devMode, "ai_model", cfg.useAIModel)
	return cfg
}

// newLogger builds the service logger: human-readable debug output in dev
// mode, JSON at info level otherwise.
func newLogger(devMode bool) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func getRequiredEnv(key string, logger *slog.Logger) string {
	value := os.Getenv(key)
	if value == "" {
		logger.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnv(key, fallback string, logger *slog.Logger) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	logger.Debug("environment variable not set, using fallback", "key", key, "fallback", fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int, logger *slog.Logger) int {
	value := os.Getenv(key)
	if value == "" {
		logger.Debug("environment variable not set, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("environment variable not an integer, using fallback", "key", key, "value", value, "fallback", fallback)
		return fallback
	}
	return parsed
}
